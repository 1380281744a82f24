package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/experiment"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/storage"
)

const scenarioYAML = `
name: cev-exponents
description: compare textbook special cases
preset: cir
params:
  steps: 20
  n_paths: 30
  seed: 5
steps:
  - name: cir
  - name: vasicek
    preset: vasicek
    params:
      steps: 20
      n_paths: 30
  - params:
      gamma: 1
sweeps:
  - param: alpha
    min: 0
    max: 1
    num: 3
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "cev-exponents" || len(s.Steps) != 3 || len(s.Sweeps) != 1 {
		t.Fatalf("unexpected scenario: %+v", s)
	}

	base, err := s.Base()
	if err != nil {
		t.Fatal(err)
	}
	if base.Gamma != 0.5 || base.Steps != 20 || base.NPaths != 30 || base.Seed != 5 {
		t.Errorf("preset and overrides not merged: %+v", base)
	}
}

func TestRunScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	store := storage.New(t.TempDir())
	r := NewRunner(experiment.New(), store, nil)

	steps, sweeps, err := r.Run(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}

	if len(steps) != 3 {
		t.Fatalf("expected 3 step results, got %d", len(steps))
	}
	if steps[1].Params.Gamma != 0 {
		t.Errorf("vasicek step gamma = %v, want 0", steps[1].Params.Gamma)
	}
	if steps[2].Name != "step-3" || steps[2].Params.Gamma != 1 || steps[2].Params.NPaths != 30 {
		t.Errorf("unnamed step not resolved from base: %+v", steps[2])
	}
	for _, st := range steps {
		if st.RunID == "" {
			t.Errorf("step %s not stored", st.Name)
		}
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 stored runs, got %d", len(runs))
	}

	if len(sweeps) != 1 || len(sweeps[0]) != 3 {
		t.Fatalf("unexpected sweep results: %+v", sweeps)
	}
	for i, want := range []float64{0, 0.5, 1} {
		if sweeps[0][i].Value != want {
			t.Errorf("sweep value %d = %v, want %v", i, sweeps[0][i].Value, want)
		}
	}
}

func TestRunScenarioStopsAtFailure(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, `
name: broken
params:
  steps: 5
  n_paths: 3
steps:
  - name: ok
  - name: bad
    params:
      conf_interval: 1
  - name: never
`))
	if err != nil {
		t.Fatal(err)
	}

	steps, err := NewRunner(experiment.New(), nil, nil).RunScenario(context.Background(), s)
	if !errors.Is(err, model.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	if len(steps) != 1 || steps[0].Name != "ok" {
		t.Errorf("expected only the first result, got %+v", steps)
	}
}

func TestRunSweepRejects(t *testing.T) {
	r := NewRunner(experiment.New(), nil, nil)
	s := &Scenario{}
	base, err := s.Base()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.RunSweep(context.Background(), base, Sweep{Param: "steps", Num: 2}); err == nil {
		t.Error("expected error for non-sweepable parameter")
	}
	if _, err := r.RunSweep(context.Background(), base, Sweep{Param: "alpha", Num: 0}); err == nil {
		t.Error("expected error for empty sweep")
	}
}

func TestUnknownPreset(t *testing.T) {
	s := &Scenario{Preset: "hull-white"}
	if _, err := s.Base(); err == nil {
		t.Error("expected error for unknown preset")
	}
}
