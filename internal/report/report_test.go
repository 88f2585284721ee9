package report

import (
	"context"
	"testing"
	"time"

	"github.com/bayneri/budgetlab/internal/analyze"
	"github.com/bayneri/budgetlab/internal/burn"
	"github.com/bayneri/budgetlab/internal/downtime"
	"github.com/bayneri/budgetlab/internal/slo"
)

// retailResult runs the four-service retail example with literal downtime.
func retailResult(t *testing.T) analyze.Result {
	t.Helper()
	src, err := downtime.NewLiteral(map[string]float64{
		"frontend":    5,
		"payment_api": 35,
		"backend":     50,
		"catalog":     10,
	}, 0)
	if err != nil {
		t.Fatalf("literal: %v", err)
	}
	result, err := analyze.Run(context.Background(), analyze.Options{
		Name:   "retail",
		Window: slo.Window{Days: 30},
		Services: []slo.ServiceObjective{
			{ID: "frontend", Objective: slo.MustObjective("99.95")},
			{ID: "payment_api", Objective: slo.MustObjective("99.9")},
			{ID: "backend", Objective: slo.MustObjective("99.9")},
			{ID: "catalog", Objective: slo.MustObjective("99.8")},
		},
		Source: src,
		Now:    func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return result
}

// undefinedResult carries one service without a budget, which the engine
// never produces from a valid objective but renderers must still handle.
func undefinedResult() analyze.Result {
	return analyze.Result{
		Name:   "edge",
		Window: analyze.Window{Days: 30, TotalMinutes: 43200},
		Status: burn.TierBudgetUndefined,
		Services: []analyze.ServiceResult{{
			ID:                "ledger",
			ObjectivePercent:  100,
			ObjectiveFraction: 1,
			UsedMinutes:       3,
			RemainingMinutes:  -3,
			Overrun:           true,
			Tier:              burn.TierBudgetUndefined,
			Guidance:          burn.TierBudgetUndefined.Guidance(),
		}},
	}
}
