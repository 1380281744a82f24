package integrators

import "github.com/YannickKae/Interest-Rate-Simulation/internal/sim"

// EulerMaruyama advances r over one step starting at grid index i:
// r + drift*dt + diffusion*dW, projected back into the model's domain.
type EulerMaruyama struct{}

func NewEulerMaruyama() *EulerMaruyama {
	return &EulerMaruyama{}
}

func (e *EulerMaruyama) Step(dyn sim.Dynamics, r float64, i int, dt, dW float64) float64 {
	// Conversions round each product so no architecture fuses them into an FMA.
	drift := float64(dyn.Drift(r, i) * dt)
	diffusion := float64(dyn.Diffusion(r, i) * dW)
	return dyn.Admissible(float64(r+drift) + diffusion)
}
