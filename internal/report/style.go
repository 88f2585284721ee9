package report

import (
	"github.com/bayneri/budgetlab/internal/burn"
	"github.com/charmbracelet/lipgloss"
)

var tierStyles = map[burn.Tier]lipgloss.Style{
	burn.TierHealthy:         lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	burn.TierAtRisk:          lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	burn.TierExhausted:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	burn.TierBudgetUndefined: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
}

var headingStyle = lipgloss.NewStyle().Bold(true)

// styleTier colours a tier name. lipgloss drops the escape codes when the
// output is not a terminal.
func styleTier(t burn.Tier) string {
	style, ok := tierStyles[t]
	if !ok {
		return string(t)
	}
	return style.Render(string(t))
}
