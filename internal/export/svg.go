package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
)

// FanChartSVG draws the confidence band as a filled polygon with the median
// on top.
func FanChartSVG(w io.Writer, s stats.Summary, width, height int) error {
	if len(s) < 2 {
		return fmt.Errorf("fan chart needs at least two points, got %d", len(s))
	}

	minX, maxX := s[0].Time, s[len(s)-1].Time
	minY, maxY := s[0].Lower, s[0].Upper
	for _, p := range s {
		if p.Lower < minY {
			minY = p.Lower
		}
		if p.Upper > maxY {
			maxY = p.Upper
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	px := func(t float64) float64 { return (t - minX) / rangeX * float64(width) }
	py := func(v float64) float64 { return float64(height) - (v-minY)/rangeY*float64(height) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	sb.WriteString(`<polygon fill="#00ccff" fill-opacity="0.25" points="`)
	for _, p := range s {
		fmt.Fprintf(&sb, "%.1f,%.1f ", px(p.Time), py(p.Upper))
	}
	for i := len(s) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%.1f,%.1f ", px(s[i].Time), py(s[i].Lower))
	}
	sb.WriteString("\"/>\n")

	sb.WriteString(`<path fill="none" stroke="#00ff88" stroke-width="1.5" d="M`)
	for i, p := range s {
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", px(p.Time), py(p.Median))
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
