package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bayneri/budgetlab/internal/analyze"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

const metricPrefix = "budgetlab_"

// WritePrometheus writes the run in the text exposition format, suitable for
// a node exporter textfile collector. Services without a budget have no burn
// sample.
func WritePrometheus(path string, result analyze.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, mf := range MetricFamilies(result) {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func MetricFamilies(result analyze.Result) []*dto.MetricFamily {
	objective := gaugeFamily("objective_ratio", "Objective as a fraction of the window.")
	allowed := gaugeFamily("allowed_downtime_minutes", "Error budget for the window in minutes.")
	used := gaugeFamily("used_downtime_minutes", "Downtime consumed in minutes.")
	remaining := gaugeFamily("remaining_budget_minutes", "Allowed minus used downtime; negative on overrun.")
	burnPct := gaugeFamily("budget_burn_percent", "Used downtime as a percentage of the budget.")
	tier := gaugeFamily("budget_tier", "Current tier of the service, 1 for the active tier.")

	for _, svc := range result.Services {
		labels := []*dto.LabelPair{label("service", svc.ID)}
		objective.Metric = append(objective.Metric, gauge(labels, svc.ObjectiveFraction))
		allowed.Metric = append(allowed.Metric, gauge(labels, svc.AllowedMinutes))
		used.Metric = append(used.Metric, gauge(labels, svc.UsedMinutes))
		remaining.Metric = append(remaining.Metric, gauge(labels, svc.RemainingMinutes))
		if svc.BurnDefined() {
			burnPct.Metric = append(burnPct.Metric, gauge(labels, *svc.BurnPercent))
		}
		tier.Metric = append(tier.Metric, gauge([]*dto.LabelPair{label("service", svc.ID), label("tier", string(svc.Tier))}, 1))
	}

	composite := gaugeFamily("composite_objective_ratio", "Product of all service objectives.")
	composite.Metric = append(composite.Metric, gauge(nil, result.Composite.Fraction))
	compositeAllowed := gaugeFamily("composite_allowed_downtime_minutes", "Error budget of the composite objective in minutes.")
	compositeAllowed.Metric = append(compositeAllowed.Metric, gauge(nil, result.Composite.AllowedMinutes))

	families := []*dto.MetricFamily{objective, allowed, used, remaining}
	if len(burnPct.Metric) > 0 {
		families = append(families, burnPct)
	}
	return append(families, tier, composite, compositeAllowed)
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(metricPrefix + name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func gauge(labels []*dto.LabelPair, value float64) *dto.Metric {
	return &dto.Metric{
		Label: labels,
		Gauge: &dto.Gauge{Value: proto.Float64(value)},
	}
}

func label(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: proto.String(name), Value: proto.String(value)}
}
