package analyze

import (
	"github.com/bayneri/budgetlab/internal/burn"
	"github.com/bayneri/budgetlab/internal/downtime"
	"github.com/bayneri/budgetlab/internal/slo"
)

func computeService(obj slo.ServiceObjective, window slo.Window, allowed float64, used downtime.Record) ServiceResult {
	status := burn.Classify(allowed, used.Minutes)
	item := ServiceResult{
		ID:                obj.ID,
		ObjectivePercent:  obj.Objective.Percent,
		ObjectiveFraction: obj.Objective.Fraction,
		AllowedMinutes:    status.Allowed,
		UsedMinutes:       status.Used,
		RemainingMinutes:  status.Remaining,
		Overrun:           status.Overrun(),
		PerDayAllowance:   slo.PerDayAllowance(allowed, window.Days),
		Tier:              status.Tier,
		Guidance:          status.Tier.Guidance(),
		Events:            used.Events,
	}
	if status.BurnDefined() {
		value := status.BurnPercent
		item.BurnPercent = &value
	}
	return item
}
