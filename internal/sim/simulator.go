package sim

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
)

type Simulator struct {
	dyn        Dynamics
	integrator Integrator
	observers  []Observer
}

func New(dyn Dynamics, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates cfg.NPaths independent paths over grid. Paths are spread
// over cfg.Workers goroutines; cancellation is honoured between paths and a
// canceled run returns no ensemble.
func (s *Simulator) Run(ctx context.Context, grid model.TimeGrid, cfg Config) (*model.Ensemble, error) {
	if err := s.validateConfig(grid, cfg); err != nil {
		return nil, err
	}

	source := cfg.Source
	if source == nil {
		source = NewStreams(cfg.Seed).Path
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	paths := make([]model.Path, cfg.NPaths)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for p := 0; p < cfg.NPaths; p++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := s.Path(p, grid, cfg.R0, source(p))
			if err != nil {
				return err
			}
			paths[p] = path
			for _, obs := range s.observers {
				obs.OnPath(p, path)
			}
			return nil
		})
	}

	err := g.Wait()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrCanceled, ctx.Err())
	}
	if err != nil {
		return nil, err
	}

	return model.NewEnsemble(grid, paths), nil
}

// Path integrates a single trajectory with one fresh draw per step.
func (s *Simulator) Path(p int, grid model.TimeGrid, r0 float64, rng Normal) (model.Path, error) {
	steps := grid.Steps()
	dt := grid.Dt()
	sqrtDt := math.Sqrt(dt)

	path := make(model.Path, steps+1)
	path[0] = r0

	for i := 1; i <= steps; i++ {
		dW := rng.NormFloat64() * sqrtDt
		next := s.integrator.Step(s.dyn, path[i-1], i-1, dt, dW)
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return nil, &model.NumericError{Path: p, Step: i, Time: grid.At(i), Value: next}
		}
		path[i] = next
	}

	return path, nil
}

func (s *Simulator) validateConfig(grid model.TimeGrid, cfg Config) error {
	if grid.Len() < 2 {
		return &model.ConfigError{Field: "steps", Constraint: ">= 1", Value: grid.Steps()}
	}
	if cfg.NPaths < 1 {
		return &model.ConfigError{Field: "nPaths", Constraint: ">= 1", Value: cfg.NPaths}
	}
	if math.IsNaN(cfg.R0) || math.IsInf(cfg.R0, 0) {
		return &model.ConfigError{Field: "r0", Constraint: "finite", Value: cfg.R0}
	}
	return nil
}
