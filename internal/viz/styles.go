package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/config"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(16)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))
)

// Report renders the model specification and the horizon distribution.
func Report(title string, p config.Params, d stats.Description) string {
	var b strings.Builder
	b.WriteString(Title.Render(title) + "\n")
	b.WriteString(Subtle.Render(Specification(p)) + "\n\n")

	rows := [][2]string{
		{"paths", fmt.Sprintf("%d", d.Count)},
		{"horizon", fmt.Sprintf("%g", p.Horizon)},
		{"mean r(T)", fmt.Sprintf("%.6f", d.Mean)},
		{"std dev r(T)", fmt.Sprintf("%.6f", d.StdDev)},
		{"min r(T)", fmt.Sprintf("%.6f", d.Min)},
		{"max r(T)", fmt.Sprintf("%.6f", d.Max)},
	}
	for _, row := range rows {
		b.WriteString(MetricLabel.Render(row[0]) + MetricValue.Render(row[1]) + "\n")
	}
	if d.NegativeShare > 0 {
		b.WriteString(Warning.Render(fmt.Sprintf("%.1f%% of paths end below zero", 100*d.NegativeShare)) + "\n")
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// Specification writes the SDE being simulated in a single line.
func Specification(p config.Params) string {
	theta := fmt.Sprintf("%g", p.RBar)
	if p.EquilibriumType == config.EquilibriumDynamic {
		theta = "[" + p.ThetaExpr + "]"
	}
	vol := fmt.Sprintf("%g r^%g", p.Sigma, p.Gamma)
	if p.VolatilityType == config.VolatilityDynamic {
		vol = "[" + p.SigmaExpr + "]"
	}
	return fmt.Sprintf("dr = -%g (r - %s) dt + %s dW", p.Alpha, theta, vol)
}
