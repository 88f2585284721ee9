package report

import (
	"fmt"
	"io"

	"github.com/bayneri/budgetlab/internal/analyze"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable prints the per-service budget summary with the composite as footer.
func RenderTable(w io.Writer, result analyze.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Service", "SLO", "Allowed (min)", "Used (min)", "Remaining (min)", "Burn", "Tier"})
	for _, svc := range result.Services {
		t.AppendRow(table.Row{
			svc.ID,
			fmt.Sprintf("%.3f%%", svc.ObjectivePercent),
			fmt.Sprintf("%.2f", svc.AllowedMinutes),
			fmt.Sprintf("%.2f", svc.UsedMinutes),
			fmt.Sprintf("%.2f", svc.RemainingMinutes),
			formatBurn(svc),
			styleTier(svc.Tier),
		})
	}
	t.AppendFooter(table.Row{
		"composite",
		fmt.Sprintf("%.4f%%", result.Composite.Percent),
		fmt.Sprintf("%.2f", result.Composite.AllowedMinutes),
		"", "", "",
		styleTier(result.Status),
	})
	t.Render()
}
