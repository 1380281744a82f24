package models

// TimeDependent is a state-independent volatility given per grid point.
// Paths are not floored and may go negative.
type TimeDependent struct {
	Series []float64
}

func NewTimeDependent(series []float64) *TimeDependent {
	return &TimeDependent{Series: series}
}

func (v *TimeDependent) Diffusion(r float64, i int) float64 { return v.Series[i] }

func (v *TimeDependent) Admissible(r float64) float64 { return r }
