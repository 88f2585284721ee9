package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bayneri/budgetlab/internal/analyze"
)

// FormatMinutes renders a duration in minutes as "Nd Nh Nm", rounded to the
// nearest whole minute. Zero days and hours are omitted; minutes are always
// present.
func FormatMinutes(m float64) string {
	if math.IsInf(m, 1) {
		return "INF"
	}
	if math.IsInf(m, -1) {
		return "-INF"
	}
	if math.IsNaN(m) {
		return "n/a"
	}
	sign := ""
	if m < 0 {
		m = -m
		sign = "-"
	}
	// Decomposed in float64: any finite value converts, however large.
	total := math.Round(m)
	if total == 0 {
		sign = ""
	}
	rest := math.Mod(total, 24*60)
	days := (total - rest) / (24 * 60)
	hours := math.Floor(rest / 60)
	minutes := math.Mod(rest, 60)

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%.0fd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%.0fh", hours))
	}
	parts = append(parts, fmt.Sprintf("%.0fm", minutes))
	return sign + strings.Join(parts, " ")
}

func formatBurn(svc analyze.ServiceResult) string {
	if !svc.BurnDefined() {
		return "INF"
	}
	return fmt.Sprintf("%.2f%%", *svc.BurnPercent)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
