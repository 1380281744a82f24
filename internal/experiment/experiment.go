package experiment

import (
	"context"
	"time"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/config"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/formula"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/integrators"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/sim"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
)

// Outcome is everything one run produces.
type Outcome struct {
	Params   config.Params
	Config   model.Config
	Ensemble *model.Ensemble
	Summary  stats.Summary
	Terminal stats.Description
	Elapsed  time.Duration
}

// Experiment wires resolver, evaluator, simulator and aggregator into a
// single call. It holds no per-run state and may be reused concurrently.
type Experiment struct {
	evaluator  formula.Evaluator
	integrator sim.Integrator
	observers  []sim.Observer
	source     sim.Source
}

type Option func(*Experiment)

func WithEvaluator(ev formula.Evaluator) Option {
	return func(e *Experiment) { e.evaluator = ev }
}

// WithObserver is notified of every completed path.
func WithObserver(o sim.Observer) Option {
	return func(e *Experiment) { e.observers = append(e.observers, o) }
}

// WithSource replaces the seeded random streams.
func WithSource(src sim.Source) Option {
	return func(e *Experiment) { e.source = src }
}

func New(opts ...Option) *Experiment {
	e := &Experiment{
		evaluator:  formula.NewExpr(),
		integrator: integrators.NewEulerMaruyama(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run validates p, simulates the ensemble and summarises it. Configuration
// and expression errors are returned before any path is generated.
func (e *Experiment) Run(ctx context.Context, p config.Params) (*Outcome, error) {
	start := time.Now()

	cfg, grid, err := config.Resolve(p)
	if err != nil {
		return nil, err
	}

	coeffs, err := sim.ResolveCoefficients(cfg, grid, e.evaluator)
	if err != nil {
		return nil, err
	}

	s := sim.New(coeffs.Dynamics(cfg), e.integrator)
	for _, o := range e.observers {
		s.AddObserver(o)
	}

	ens, err := s.Run(ctx, grid, sim.Config{
		R0:      cfg.R0,
		NPaths:  cfg.NPaths,
		Workers: cfg.Workers,
		Seed:    cfg.Seed,
		Source:  e.source,
	})
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Params:   p,
		Config:   cfg,
		Ensemble: ens,
		Summary:  stats.Aggregate(ens, cfg.ConfidenceLevel),
	}
	if out.Terminal, err = stats.Describe(ens.Terminal()); err != nil {
		return nil, err
	}
	out.Elapsed = time.Since(start)

	return out, nil
}

// Simulate runs p with the default evaluator and integrator.
func Simulate(ctx context.Context, p config.Params) (*Outcome, error) {
	return New().Run(ctx, p)
}
