package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
)

// BandChart plots the lower bound, median and upper bound over time.
func BandChart(s stats.Summary, width, height int, caption string) string {
	if len(s) == 0 {
		return ""
	}
	return asciigraph.PlotMany(
		[][]float64{s.Lowers(), s.Medians(), s.Uppers()},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(4),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green, asciigraph.Blue),
		asciigraph.SeriesLegends("lower", "median", "upper"),
	)
}
