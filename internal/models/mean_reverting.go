package models

// Volatility is the diffusion coefficient of the short rate together with
// the projection that keeps the state inside its domain.
type Volatility interface {
	Diffusion(r float64, i int) float64
	Admissible(r float64) float64
}

// MeanReverting is dr = -alpha (r - theta(t)) dt + vol(r, t) dW.
type MeanReverting struct {
	Alpha float64
	Theta []float64
	Vol   Volatility
}

func NewMeanReverting(alpha float64, theta []float64, vol Volatility) *MeanReverting {
	return &MeanReverting{Alpha: alpha, Theta: theta, Vol: vol}
}

// Drift at grid index i, per unit time.
func (m *MeanReverting) Drift(r float64, i int) float64 {
	return -m.Alpha * (r - m.Theta[i])
}

func (m *MeanReverting) Diffusion(r float64, i int) float64 {
	return m.Vol.Diffusion(r, i)
}

func (m *MeanReverting) Admissible(r float64) float64 {
	return m.Vol.Admissible(r)
}
