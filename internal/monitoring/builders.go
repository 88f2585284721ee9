package monitoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"github.com/bayneri/budgetlab/internal/planner"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func BuildService(req ServiceRequest) *monitoringpb.Service {
	return &monitoringpb.Service{
		Name:        fmt.Sprintf("projects/%s/services/%s", req.Project, req.ServiceID),
		DisplayName: req.DisplayName,
		UserLabels:  req.Labels,
		Identifier: &monitoringpb.Service_Custom_{
			Custom: &monitoringpb.Service_Custom{},
		},
	}
}

// BuildSLO describes an objective as a windows-based SLI over one-minute
// uptime windows, so a bad window is one minute of downtime.
func BuildSLO(req SLORequest) (*monitoringpb.ServiceLevelObjective, error) {
	if req.WindowDays <= 0 {
		return nil, fmt.Errorf("window must be a positive number of days, got %d", req.WindowDays)
	}
	goal := roundGoal(req.Objective.Objective.Fraction)
	if goal <= 0 || goal >= 1 {
		return nil, fmt.Errorf("goal %v for %s is outside (0, 1)", goal, req.Objective.Name)
	}
	filter := buildFilter(UptimeMetric, UptimeResourceType, fmt.Sprintf("metric.label.check_id=%q", req.Objective.ResourceID))
	return &monitoringpb.ServiceLevelObjective{
		Name:        SLORef(req.Project, req.ServiceID, req.Objective.ResourceID),
		DisplayName: req.Objective.DisplayName,
		ServiceLevelIndicator: &monitoringpb.ServiceLevelIndicator{
			Type: &monitoringpb.ServiceLevelIndicator_WindowsBased{
				WindowsBased: &monitoringpb.WindowsBasedSli{
					WindowCriterion: &monitoringpb.WindowsBasedSli_GoodBadMetricFilter{
						GoodBadMetricFilter: filter,
					},
					WindowPeriod: durationpb.New(time.Minute),
				},
			},
		},
		Goal: goal,
		Period: &monitoringpb.ServiceLevelObjective_RollingPeriod{
			RollingPeriod: durationpb.New(time.Duration(req.WindowDays) * 24 * time.Hour),
		},
		UserLabels: req.Labels,
	}, nil
}

func BuildAlertPolicy(req AlertRequest) (*monitoringpb.AlertPolicy, error) {
	if req.SLORef == "" {
		return nil, fmt.Errorf("alert %s has no SLO reference", req.Alert.ID)
	}
	var conditions []*monitoringpb.AlertPolicy_Condition
	for _, window := range req.Alert.Windows {
		windowDuration, err := parseWindow(window)
		if err != nil {
			return nil, err
		}
		condition := &monitoringpb.AlertPolicy_Condition{
			DisplayName: fmt.Sprintf("%s %s", req.Alert.DisplayName, window),
			Condition: &monitoringpb.AlertPolicy_Condition_ConditionThreshold{
				ConditionThreshold: &monitoringpb.AlertPolicy_Condition_MetricThreshold{
					Filter:                buildBurnRateFilter(req.SLORef, window),
					Comparison:            monitoringpb.ComparisonType_COMPARISON_GT,
					ThresholdValue:        req.Alert.BurnRate,
					Duration:              durationpb.New(windowDuration),
					EvaluationMissingData: monitoringpb.AlertPolicy_Condition_EVALUATION_MISSING_DATA_NO_OP,
				},
			},
		}
		conditions = append(conditions, condition)
	}

	return &monitoringpb.AlertPolicy{
		DisplayName: req.Alert.DisplayName,
		Documentation: &monitoringpb.AlertPolicy_Documentation{
			Content:  AlertDocumentation(req.Alert, req.SLOName),
			MimeType: "text/markdown",
		},
		Conditions: conditions,
		Combiner:   monitoringpb.AlertPolicy_AND,
		UserLabels: req.Labels,
		Enabled:    wrapperspb.Bool(true),
		Severity:   severityFor(req.Alert.Severity),
	}, nil
}

func AlertDocumentation(alert planner.AlertPlan, sloName string) string {
	lines := []string{
		fmt.Sprintf("SLO: %s", sloName),
		fmt.Sprintf("Alert type: %s", alert.Type),
		fmt.Sprintf("Burn rate: %.1fx", alert.BurnRate),
		fmt.Sprintf("Windows: %s", strings.Join(alert.Windows, ", ")),
		fmt.Sprintf("Fires after %.2f min of downtime (%.1f%% of the window budget)", alert.TriggerMinutes, alert.BudgetPercent),
	}
	if alert.Runbook != "" {
		lines = append(lines, fmt.Sprintf("Runbook: %s", alert.Runbook))
	}
	return strings.Join(lines, "\n")
}

func severityFor(value string) monitoringpb.AlertPolicy_Severity {
	switch strings.ToLower(value) {
	case "page":
		return monitoringpb.AlertPolicy_CRITICAL
	case "ticket":
		return monitoringpb.AlertPolicy_WARNING
	default:
		return monitoringpb.AlertPolicy_SEVERITY_UNSPECIFIED
	}
}

// SeverityName is the enum name used by the Terraform provider.
func SeverityName(value string) string {
	return severityFor(value).String()
}

func buildFilter(metric, resourceType, extra string) string {
	filter := fmt.Sprintf("metric.type=%q AND resource.type=%q", metric, resourceType)
	if strings.TrimSpace(extra) != "" {
		return fmt.Sprintf("%s AND %s", filter, extra)
	}
	return filter
}

// UptimeFilter is the good/bad window filter used for an objective.
func UptimeFilter(resourceID string) string {
	return buildFilter(UptimeMetric, UptimeResourceType, fmt.Sprintf("metric.label.check_id=%q", resourceID))
}

func buildBurnRateFilter(sloRef, window string) string {
	return fmt.Sprintf("select_slo_burn_rate(%q, %q)", sloRef, window)
}

// BurnRateFilter exposes the burn-rate selector for exporters that do not
// go through the proto builders.
func BurnRateFilter(sloRef, window string) string {
	return buildBurnRateFilter(sloRef, window)
}

// ParseWindow accepts the short duration forms used in alert windows: 30s, 5m, 1h, 7d, 1w.
func ParseWindow(window string) (time.Duration, error) {
	return parseWindow(window)
}

func parseWindow(window string) (time.Duration, error) {
	if window == "" {
		return 0, fmt.Errorf("window is empty")
	}
	unit := window[len(window)-1]
	value := window[:len(window)-1]
	amount, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid window %q", window)
	}
	switch unit {
	case 's':
		return time.Duration(amount) * time.Second, nil
	case 'm':
		return time.Duration(amount) * time.Minute, nil
	case 'h':
		return time.Duration(amount) * time.Hour, nil
	case 'd':
		return time.Duration(amount) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(amount) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown window unit %q", string(unit))
	}
}

func roundGoal(goal float64) float64 {
	const precision = 1e6
	return math.Round(goal*precision) / precision
}
