package burn

import (
	"math"
	"testing"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		allowed float64
		used    float64
		want    Tier
	}{
		{"zero-used", 1000, 0, TierHealthy},
		{"just-below-half", 1000, 499.99, TierHealthy},
		{"half-is-at-risk", 1000, 500, TierAtRisk},
		{"just-below-budget", 1000, 999.99, TierAtRisk},
		{"budget-is-exhausted", 1000, 1000, TierExhausted},
		{"overrun", 1000, 1500, TierExhausted},
		{"zero-budget", 0, 0, TierBudgetUndefined},
		{"zero-budget-with-use", 0, 12, TierBudgetUndefined},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.allowed, tc.used)
			if got.Tier != tc.want {
				t.Fatalf("Classify(%v, %v) tier = %s, want %s", tc.allowed, tc.used, got.Tier, tc.want)
			}
		})
	}
}

func TestClassifyWorkedExample(t *testing.T) {
	got := Classify(43.2, 35)
	if math.Abs(got.Remaining-8.2) > 1e-9 {
		t.Fatalf("expected remaining 8.2, got %v", got.Remaining)
	}
	if math.Abs(got.BurnPercent-81.0185) > 1e-3 {
		t.Fatalf("expected burn ~81.02%%, got %v", got.BurnPercent)
	}
	if got.Tier != TierAtRisk {
		t.Fatalf("expected at-risk, got %s", got.Tier)
	}
	if got.Overrun() {
		t.Fatalf("did not expect overrun")
	}
}

func TestClassifyZeroBudgetSentinel(t *testing.T) {
	got := Classify(0, 5)
	if got.BurnDefined() {
		t.Fatalf("expected undefined burn percent")
	}
	if !math.IsInf(got.BurnPercent, 1) {
		t.Fatalf("expected +Inf sentinel, got %v", got.BurnPercent)
	}
	if !got.Overrun() {
		t.Fatalf("expected overrun for use against zero budget")
	}
}

func TestWorst(t *testing.T) {
	if got := Worst(TierHealthy, TierAtRisk, TierHealthy); got != TierAtRisk {
		t.Fatalf("expected at-risk, got %s", got)
	}
	if got := Worst(TierAtRisk, TierExhausted, TierBudgetUndefined); got != TierExhausted {
		t.Fatalf("expected exhausted, got %s", got)
	}
	if got := Worst(); got != "" {
		t.Fatalf("expected empty tier, got %s", got)
	}
}

func TestGuidance(t *testing.T) {
	for _, tier := range []Tier{TierBudgetUndefined, TierHealthy, TierAtRisk, TierExhausted} {
		if tier.Guidance() == "" {
			t.Fatalf("missing guidance for %s", tier)
		}
	}
}
