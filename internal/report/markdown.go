package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bayneri/budgetlab/internal/analyze"
)

type Options struct {
	Explain bool
	Notes   []string
}

func WriteMarkdownSummary(path string, result analyze.Result, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var b strings.Builder

	fmt.Fprintf(&b, "# %s error budgets\n\n", result.Name)
	fmt.Fprintf(&b, "- Run: %s\n", result.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", result.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Window: %d days (%.0f minutes)\n", result.Window.Days, result.Window.TotalMinutes)
	fmt.Fprintf(&b, "- Downtime source: %s\n", result.Mode)
	fmt.Fprintf(&b, "- Status: %s\n\n", result.Status)

	fmt.Fprintf(&b, "| Service | SLO | Allowed | Used | Remaining | Burn | Tier |\n")
	fmt.Fprintf(&b, "| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, svc := range result.Services {
		fmt.Fprintf(&b, "| %s | %.3f%% | %.2f min (%s) | %.2f min | %.2f min | %s | %s |\n",
			svc.ID, svc.ObjectivePercent, svc.AllowedMinutes, FormatMinutes(svc.AllowedMinutes),
			svc.UsedMinutes, svc.RemainingMinutes, formatBurn(svc), svc.Tier)
	}

	c := result.Composite
	fmt.Fprintf(&b, "\n## Composite\n\n")
	fmt.Fprintf(&b, "- Fraction: %.6f (%.4f%%)\n", c.Fraction, c.Percent)
	fmt.Fprintf(&b, "- Allowed downtime: %.2f min (~%s)\n", c.AllowedMinutes, FormatMinutes(c.AllowedMinutes))
	if c.Weakest != "" {
		fmt.Fprintf(&b, "- Weakest service: %s\n", c.Weakest)
	}

	var guidance []string
	for _, svc := range result.Services {
		if svc.Guidance != "" {
			guidance = append(guidance, fmt.Sprintf("- **%s**: %s", svc.ID, svc.Guidance))
		}
	}
	if len(guidance) > 0 {
		fmt.Fprintf(&b, "\n## Guidance\n\n%s\n", strings.Join(guidance, "\n"))
	}

	if len(opts.Notes) > 0 {
		fmt.Fprintf(&b, "\n## Notes & assumptions\n\n")
		for _, note := range opts.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	if opts.Explain {
		fmt.Fprintf(&b, "\n## How computed\n")
		fmt.Fprintf(&b, "\nFormula: allowed = (1 - objective) * days * 1440; remaining = allowed - used; burn = used / allowed * 100\n")
		fmt.Fprintf(&b, "Composite: product of objective fractions, treating service failures as independent.\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}
