package model

import (
	"fmt"
	"math"
)

// Floor is the admissible minimum of a CEV state with fractional exponent.
// It binds every state produced by a step; path[0] is r0 as given.
const Floor = math.SmallestNonzeroFloat64

// EquilibriumMode selects how the long-term level theta(t) is given.
type EquilibriumMode int

const (
	EquilibriumConstant EquilibriumMode = iota
	EquilibriumDynamic
)

func (m EquilibriumMode) String() string {
	switch m {
	case EquilibriumConstant:
		return "Constant"
	case EquilibriumDynamic:
		return "Dynamic"
	default:
		return fmt.Sprintf("EquilibriumMode(%d)", int(m))
	}
}

// VolatilityMode selects the diffusion coefficient.
type VolatilityMode int

const (
	VolatilityCEV VolatilityMode = iota
	VolatilityDynamic
)

func (m VolatilityMode) String() string {
	switch m {
	case VolatilityCEV:
		return "CEV"
	case VolatilityDynamic:
		return "Dynamic"
	default:
		return fmt.Sprintf("VolatilityMode(%d)", int(m))
	}
}

// Config is a validated simulation request. Only the fields of the active
// equilibrium and volatility representation are read.
type Config struct {
	Alpha float64

	Equilibrium EquilibriumMode
	RBar        float64
	ThetaExpr   string

	Volatility VolatilityMode
	Sigma      float64
	Gamma      float64
	SigmaExpr  string

	R0              float64
	Horizon         float64
	Steps           int
	NPaths          int
	ConfidenceLevel float64

	Seed    uint64
	Workers int
}

// Dt is the uniform step length.
func (c Config) Dt() float64 {
	return c.Horizon / float64(c.Steps)
}

// Path is one trajectory, one rate per grid point.
type Path []float64
