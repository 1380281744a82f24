package model

// Ensemble holds every path of a run on a shared grid. Paths carry no
// ordering significance.
type Ensemble struct {
	Grid  TimeGrid
	Paths []Path
}

func NewEnsemble(grid TimeGrid, paths []Path) *Ensemble {
	return &Ensemble{Grid: grid, Paths: paths}
}

func (e *Ensemble) NumPaths() int { return len(e.Paths) }

// At returns the rate of path p at time index i.
func (e *Ensemble) At(i, p int) float64 { return e.Paths[p][i] }

// CrossSection copies the values of all paths at time index i.
func (e *Ensemble) CrossSection(i int) []float64 {
	out := make([]float64, len(e.Paths))
	for p, path := range e.Paths {
		out[p] = path[i]
	}
	return out
}

// Terminal is the cross-section at the horizon.
func (e *Ensemble) Terminal() []float64 {
	return e.CrossSection(e.Grid.Len() - 1)
}
