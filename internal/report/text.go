package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bayneri/budgetlab/internal/analyze"
	"github.com/bayneri/budgetlab/internal/burn"
)

type TextOptions struct {
	// SkipComposite drops the composite section, used by the single-service calculator.
	SkipComposite bool
	Notes         []string
}

func RenderText(w io.Writer, result analyze.Result, opts TextOptions) {
	fmt.Fprintf(w, "%s\n", headingStyle.Render(fmt.Sprintf("== %s: error budget summary ==", result.Name)))
	fmt.Fprintf(w, "Window: %d days = %.0f minutes (mode: %s)\n", result.Window.Days, result.Window.TotalMinutes, result.Mode)

	for _, svc := range result.Services {
		fmt.Fprintln(w, "")
		renderService(w, result.Window.Days, svc)
	}

	if !opts.SkipComposite {
		fmt.Fprintln(w, "")
		renderComposite(w, result)
	}

	if len(opts.Notes) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Teaching notes:")
		for _, note := range opts.Notes {
			fmt.Fprintf(w, " - %s\n", note)
		}
	}
}

func renderService(w io.Writer, days int, svc analyze.ServiceResult) {
	fmt.Fprintf(w, "--- %s ---\n", svc.ID)
	fmt.Fprintf(w, "SLO: %.3f%% over last %d days\n", svc.ObjectivePercent, days)
	fmt.Fprintf(w, "Allowed downtime (error budget): %.2f minutes (%s)\n", svc.AllowedMinutes, FormatMinutes(svc.AllowedMinutes))
	fmt.Fprintf(w, "Used downtime so far: %.2f minutes (%s)\n", svc.UsedMinutes, FormatMinutes(svc.UsedMinutes))
	if len(svc.Events) > 0 {
		fmt.Fprintf(w, "Simulated %d events, durations (minutes): %s\n", len(svc.Events), formatEvents(svc.Events))
	}
	if svc.Overrun {
		overrun := -svc.RemainingMinutes
		fmt.Fprintf(w, "Overrun of error budget: %.2f minutes (%s)\n", overrun, FormatMinutes(overrun))
	} else {
		fmt.Fprintf(w, "Remaining error budget: %.2f minutes (%s)\n", svc.RemainingMinutes, FormatMinutes(svc.RemainingMinutes))
	}
	fmt.Fprintf(w, "Error budget burn: %s\n", formatBurn(svc))
	fmt.Fprintf(w, "Tier: %s\n", styleTier(svc.Tier))
	fmt.Fprintf(w, "Guidance: %s\n", svc.Guidance)
	if svc.Tier != burn.TierBudgetUndefined {
		fmt.Fprintf(w, "Per-day allowed downtime (avg): %.2f minutes/day (%s)\n", svc.PerDayAllowance, FormatMinutes(svc.PerDayAllowance))
	}
}

func renderComposite(w io.Writer, result analyze.Result) {
	c := result.Composite
	fmt.Fprintf(w, "Composite SLO (AND of %d services):\n", c.Services)
	fmt.Fprintf(w, " - Composite SLO fraction : %.6f\n", c.Fraction)
	fmt.Fprintf(w, " - Composite SLO percent  : %.4f%%\n", c.Percent)
	fmt.Fprintf(w, " - Composite allowed downtime: %.2f min (~%s)\n", c.AllowedMinutes, FormatMinutes(c.AllowedMinutes))
	if c.Weakest != "" {
		fmt.Fprintf(w, " - Weakest service: %s\n", c.Weakest)
	}
}

func formatEvents(events []float64) string {
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, fmt.Sprintf("%.2f", e))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
