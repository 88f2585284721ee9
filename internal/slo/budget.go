package slo

// ErrorBudget returns the downtime in minutes that fraction allows over a
// window of days. The result is not rounded.
func ErrorBudget(fraction float64, days int) float64 {
	return (1 - fraction) * float64(days) * MinutesPerDay
}

// Budget is ErrorBudget for a parsed objective and window.
func Budget(obj Objective, window Window) float64 {
	return ErrorBudget(obj.Fraction, window.Days)
}

// PerDayAllowance spreads a budget evenly over the window.
func PerDayAllowance(budget float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return budget / float64(days)
}
