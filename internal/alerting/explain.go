package alerting

import (
	"fmt"
	"strings"

	"github.com/bayneri/budgetlab/internal/slo"
)

const (
	Topic          = "burn-rate"
	TopicComposite = "composite"
)

// Topics lists the subjects Explain understands.
func Topics() []string {
	return []string{Topic, TopicComposite}
}

func Explain(topic string) (string, error) {
	switch strings.TrimSpace(topic) {
	case Topic:
		return ExplainBurnRate(), nil
	case TopicComposite:
		return ExplainComposite(), nil
	default:
		return "", fmt.Errorf("unknown topic %q (available: %s)", topic, strings.Join(Topics(), ", "))
	}
}

func ExplainBurnRate() string {
	return `A burn rate is how fast a service consumes its error budget relative to the window.
At 1x the budget runs out exactly at the end of the window; at 14.4x a 30-day budget is gone in about two days.

Tiers used by the calculator:
  healthy           less than 50% of the budget used
  at-risk           50% or more used, but still some budget left
  exhausted         the budget is fully used or overrun
  budget-undefined  the objective allows no downtime at all

Multi-window alerts combine a fast window (catch outages quickly) with a slow window (avoid noise from brief spikes).
The plan command pages when the budget burns 14.4x faster over 5m/1h (2% of a 30-day budget),
and opens a ticket at 6x over 30m/6h (5% of a 30-day budget).

You should override burn rates only when you have evidence your service tolerates faster budget spend or requires tighter paging, and when your on-call can respond reliably to the added volume.`
}

func ExplainComposite() string {
	a := slo.MustObjective("99.9")
	b := slo.MustObjective("99.9")
	product := a.Fraction * b.Fraction
	return fmt.Sprintf(`A composite SLO is the chance that every service in a user journey is up at the same time.
If the services fail independently it is the product of their objectives:
  %s x %s = %.4f%%, which allows %.1f minutes of downtime in 30 days instead of %.1f.

More services means lower end-to-end reliability, and the composite error budget shows how tight
reliability is for the full journey. Real outages are often correlated (shared databases, networks,
deploys), so treat the composite as a teaching approximation rather than a forecast.`,
		a, b, product*100, slo.ErrorBudget(product, 30), slo.ErrorBudget(a.Fraction, 30))
}
