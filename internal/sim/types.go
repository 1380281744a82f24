package sim

import "github.com/YannickKae/Interest-Rate-Simulation/internal/model"

// Dynamics is a one-factor SDE on the time grid. Index i refers to the left
// end of the step.
type Dynamics interface {
	Drift(r float64, i int) float64
	Diffusion(r float64, i int) float64
	Admissible(r float64) float64
}

type Integrator interface {
	Step(dyn Dynamics, r float64, i int, dt, dW float64) float64
}

// Normal draws standard normal variates. Implementations need not be safe
// for concurrent use; every path gets its own.
type Normal interface {
	NormFloat64() float64
}

// Source hands out the random stream for path p.
type Source func(p int) Normal

// Observer is notified as each path finishes integrating. A run that later
// fails or is canceled may already have reported some of its paths.
// OnPath may be called from several goroutines.
type Observer interface {
	OnPath(p int, path model.Path)
}

type Config struct {
	R0      float64
	NPaths  int
	Workers int
	Seed    uint64
	// Source overrides the seeded streams, mainly for tests.
	Source Source
}
