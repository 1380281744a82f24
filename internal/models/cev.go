package models

import (
	"math"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
)

// GammaTolerance is the distance from the nearest integer within which a CEV
// exponent is treated as whole.
const GammaTolerance = 1e-9

// CEV is sigma * r^gamma. For fractional gamma the base of the power and the
// post-step state are floored at model.Floor.
type CEV struct {
	Sigma float64
	Gamma float64

	integer  bool
	exponent float64
}

func NewCEV(sigma, gamma float64) *CEV {
	c := &CEV{Sigma: sigma, Gamma: gamma, exponent: gamma}
	if r := math.Round(gamma); math.Abs(gamma-r) <= GammaTolerance {
		c.integer = true
		c.exponent = r
	}
	return c
}

// IntegerExponent reports whether gamma counts as a whole number.
func (c *CEV) IntegerExponent() bool { return c.integer }

func (c *CEV) Diffusion(r float64, i int) float64 {
	base := r
	if !c.integer {
		base = math.Max(r, model.Floor)
	}
	return c.Sigma * math.Pow(base, c.exponent)
}

func (c *CEV) Admissible(r float64) float64 {
	if c.integer {
		return r
	}
	return math.Max(r, model.Floor)
}
