package automation

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/config"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/experiment"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/logger"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/storage"
)

// Scenario is a scripted batch of runs sharing a base parameter set.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Params      yaml.Node      `yaml:"params"`
	Steps       []ScenarioStep `yaml:"steps"`
	Sweeps      []Sweep        `yaml:"sweeps"`
}

// ScenarioStep overrides the base parameters for one run. Only the keys
// present in params are changed.
type ScenarioStep struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Params yaml.Node `yaml:"params"`
}

// Sweep varies one parameter over an evenly spaced range.
type Sweep struct {
	Param string  `yaml:"param"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Num   int     `yaml:"num"`
}

type StepResult struct {
	Name     string
	RunID    string
	Params   config.Params
	Summary  stats.Summary
	Terminal stats.Description
}

type SweepResult struct {
	Param    string
	Value    float64
	Terminal stats.Description
	// FinalMedian, FinalLower and FinalUpper are the band at the horizon.
	FinalMedian float64
	FinalLower  float64
	FinalUpper  float64
}

// Sweepable lists the parameters a sweep may vary, by their YAML name.
var Sweepable = map[string]func(p *config.Params, v float64){
	"alpha":         func(p *config.Params, v float64) { p.Alpha = v },
	"r_bar":         func(p *config.Params, v float64) { p.RBar = v },
	"sigma":         func(p *config.Params, v float64) { p.Sigma = v },
	"gamma":         func(p *config.Params, v float64) { p.Gamma = v },
	"r0":            func(p *config.Params, v float64) { p.R0 = v },
	"horizon":       func(p *config.Params, v float64) { p.Horizon = v },
	"conf_interval": func(p *config.Params, v float64) { p.ConfInterval = v },
}

func SweepableParams() []string {
	names := make([]string, 0, len(Sweepable))
	for name := range Sweepable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// Runner executes scenarios. A nil store skips persistence.
type Runner struct {
	exp   *experiment.Experiment
	store *storage.Store
	log   *logger.Logger
}

func NewRunner(exp *experiment.Experiment, store *storage.Store, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{exp: exp, store: store, log: log}
}

// Base resolves the scenario-level preset and parameter overrides.
func (s *Scenario) Base() (config.Params, error) {
	return overlay(*config.Default(), s.Preset, &s.Params)
}

func overlay(base config.Params, preset string, node *yaml.Node) (config.Params, error) {
	p := base
	if preset != "" {
		ps := config.GetPreset(preset)
		if ps == nil {
			return p, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p = *ps
	}
	if node.Kind != 0 {
		if err := node.Decode(&p); err != nil {
			return p, fmt.Errorf("decode params: %w", err)
		}
	}
	return p, nil
}

// RunScenario runs every step in order and stops at the first failure,
// returning the results gathered so far.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	base, err := scenario.Base()
	if err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}

		p, err := overlay(base, step.Preset, &step.Params)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}

		r.log.Info("scenario step", logger.String("scenario", scenario.Name), logger.String("step", name),
			logger.Int("index", i+1), logger.Int("total", len(scenario.Steps)))

		out, err := r.exp.Run(ctx, p)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}

		res := StepResult{Name: name, Params: p, Summary: out.Summary, Terminal: out.Terminal}
		if r.store != nil {
			if res.RunID, err = r.store.Save(out); err != nil {
				return results, fmt.Errorf("step %d (%s) save: %w", i+1, name, err)
			}
		}
		results = append(results, res)
	}

	return results, nil
}

// RunSweep simulates base once per value of the swept parameter.
func (r *Runner) RunSweep(ctx context.Context, base config.Params, sweep Sweep) ([]SweepResult, error) {
	set, ok := Sweepable[sweep.Param]
	if !ok {
		return nil, fmt.Errorf("cannot sweep %q (available: %v)", sweep.Param, SweepableParams())
	}
	if sweep.Num < 1 {
		return nil, fmt.Errorf("sweep %s: num must be >= 1, got %d", sweep.Param, sweep.Num)
	}

	step := 0.0
	if sweep.Num > 1 {
		step = (sweep.Max - sweep.Min) / float64(sweep.Num-1)
	}

	results := make([]SweepResult, 0, sweep.Num)
	for i := 0; i < sweep.Num; i++ {
		value := sweep.Min + float64(i)*step
		if i == sweep.Num-1 && sweep.Num > 1 {
			value = sweep.Max
		}

		p := base
		set(&p, value)

		out, err := r.exp.Run(ctx, p)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sweep.Param, value, err)
		}

		final := out.Summary[len(out.Summary)-1]
		results = append(results, SweepResult{
			Param:       sweep.Param,
			Value:       value,
			Terminal:    out.Terminal,
			FinalMedian: final.Median,
			FinalLower:  final.Lower,
			FinalUpper:  final.Upper,
		})

		r.log.Debug("sweep point", logger.String("param", sweep.Param), logger.Float64("value", value),
			logger.Int("index", i+1), logger.Int("total", sweep.Num))
	}

	return results, nil
}

// Run executes the scenario steps followed by its sweeps.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) ([]StepResult, [][]SweepResult, error) {
	steps, err := r.RunScenario(ctx, scenario)
	if err != nil {
		return steps, nil, err
	}

	base, err := scenario.Base()
	if err != nil {
		return steps, nil, err
	}

	sweeps := make([][]SweepResult, 0, len(scenario.Sweeps))
	for _, sw := range scenario.Sweeps {
		res, err := r.RunSweep(ctx, base, sw)
		if err != nil {
			return steps, sweeps, err
		}
		sweeps = append(sweeps, res)
	}
	return steps, sweeps, nil
}
