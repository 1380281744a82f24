package stats

import (
	"sort"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
)

// Point is the cross-sectional summary at one grid time.
type Point struct {
	Time   float64 `json:"time"`
	Median float64 `json:"median"`
	Lower  float64 `json:"p_lower"`
	Upper  float64 `json:"p_upper"`
}

type Summary []Point

// Aggregate computes median and confidence band per time index. The
// ensemble is not modified.
func Aggregate(ens *model.Ensemble, confidence float64) Summary {
	lowerP, upperP := BandProbabilities(confidence)
	out := make(Summary, ens.Grid.Len())

	for i := range out {
		cs := ens.CrossSection(i)
		sort.Float64s(cs)
		out[i] = Point{
			Time:   ens.Grid.At(i),
			Median: Quantile(cs, 0.5),
			Lower:  Quantile(cs, lowerP),
			Upper:  Quantile(cs, upperP),
		}
	}

	return out
}

// Medians returns the median series.
func (s Summary) Medians() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Median
	}
	return out
}

func (s Summary) Lowers() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Lower
	}
	return out
}

func (s Summary) Uppers() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Upper
	}
	return out
}
