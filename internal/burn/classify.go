package burn

import "math"

type Tier string

const (
	TierBudgetUndefined Tier = "budget-undefined"
	TierHealthy         Tier = "healthy"
	TierAtRisk          Tier = "at-risk"
	TierExhausted       Tier = "exhausted"
)

// AtRiskRatio is the share of the budget at which a service stops being
// healthy. The boundary itself is at-risk.
const AtRiskRatio = 0.5

// Status is the budget position of one service. BurnPercent is +Inf when
// Allowed is zero.
type Status struct {
	Allowed     float64 `json:"allowedMinutes"`
	Used        float64 `json:"usedMinutes"`
	Remaining   float64 `json:"remainingMinutes"`
	BurnPercent float64 `json:"-"`
	Tier        Tier    `json:"tier"`
}

func Classify(allowed, used float64) Status {
	status := Status{
		Allowed:   allowed,
		Used:      used,
		Remaining: allowed - used,
	}
	if allowed == 0 {
		status.BurnPercent = math.Inf(1)
		status.Tier = TierBudgetUndefined
		return status
	}
	status.BurnPercent = used / allowed * 100
	switch {
	case used < AtRiskRatio*allowed:
		status.Tier = TierHealthy
	case used < allowed:
		status.Tier = TierAtRisk
	default:
		status.Tier = TierExhausted
	}
	return status
}

func (s Status) BurnDefined() bool {
	return !math.IsInf(s.BurnPercent, 0) && !math.IsNaN(s.BurnPercent)
}

func (s Status) Overrun() bool {
	return s.Remaining < 0
}

// Guidance is the release advice printed next to a tier.
func (t Tier) Guidance() string {
	switch t {
	case TierBudgetUndefined:
		return "SLO allows no downtime. This is unrealistic; consider setting a realistic SLO."
	case TierHealthy:
		return "Error budget healthy. Safe to proceed with regular releases."
	case TierAtRisk:
		return "Error budget is being consumed. Consider reducing risky releases and prioritize reliability work."
	case TierExhausted:
		return "Error budget exhausted or exceeded. Pause feature releases; focus on remediation and reducing downtime."
	default:
		return ""
	}
}

func (t Tier) rank() int {
	switch t {
	case TierExhausted:
		return 4
	case TierBudgetUndefined:
		return 3
	case TierAtRisk:
		return 2
	case TierHealthy:
		return 1
	default:
		return 0
	}
}

// Worst returns the most severe tier, or the empty tier for no input.
func Worst(tiers ...Tier) Tier {
	var worst Tier
	for _, tier := range tiers {
		if tier.rank() > worst.rank() {
			worst = tier
		}
	}
	return worst
}
