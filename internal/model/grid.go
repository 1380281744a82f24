package model

// TimeGrid is the uniform grid 0 = t0 < t1 < ... < tN = T.
type TimeGrid struct {
	times []float64
	dt    float64
}

// NewTimeGrid builds steps+1 points over [0, horizon]. The last point is
// exactly horizon. Callers validate steps >= 1 and horizon > 0.
func NewTimeGrid(horizon float64, steps int) TimeGrid {
	dt := horizon / float64(steps)
	times := make([]float64, steps+1)
	for i := 0; i < steps; i++ {
		times[i] = float64(i) * dt
	}
	times[steps] = horizon
	return TimeGrid{times: times, dt: dt}
}

func (g TimeGrid) Len() int         { return len(g.times) }
func (g TimeGrid) Dt() float64      { return g.dt }
func (g TimeGrid) At(i int) float64 { return g.times[i] }
func (g TimeGrid) Horizon() float64 { return g.times[len(g.times)-1] }
func (g TimeGrid) Steps() int       { return len(g.times) - 1 }

// Points returns a copy of the grid.
func (g TimeGrid) Points() []float64 {
	out := make([]float64, len(g.times))
	copy(out, g.times)
	return out
}
