package terraform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bayneri/budgetlab/internal/monitoring"
	"github.com/bayneri/budgetlab/internal/planner"
)

const outputFile = "main.tf.json"

func Write(plan planner.Plan, outDir string) (string, error) {
	if outDir == "" {
		outDir = filepath.Join("out", "terraform")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}
	dashboardJSON, err := monitoring.BuildDashboardJSON(monitoring.DashboardRequest{
		Project:    plan.Project,
		ServiceID:  plan.ServiceID,
		Name:       plan.Name,
		Objectives: plan.Objectives,
		Composite:  plan.Composite,
		Labels:     plan.Labels,
	})
	if err != nil {
		return "", err
	}
	resources, err := buildResources(plan, dashboardJSON)
	if err != nil {
		return "", err
	}

	cfg := map[string]interface{}{
		"terraform": map[string]interface{}{
			"required_providers": map[string]interface{}{
				"google": map[string]interface{}{
					"source":  "hashicorp/google",
					"version": ">= 5.0",
				},
			},
		},
		"provider": map[string]interface{}{
			"google": map[string]interface{}{
				"project": plan.Project,
			},
		},
		"resource": resources,
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')
	path := filepath.Join(outDir, outputFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func buildResources(plan planner.Plan, dashboardJSON string) (map[string]map[string]interface{}, error) {
	resources := map[string]map[string]interface{}{}

	serviceName := tfName("service", plan.ServiceID)
	resources["google_monitoring_custom_service"] = map[string]interface{}{
		serviceName: map[string]interface{}{
			"project":      plan.Project,
			"service_id":   plan.ServiceID,
			"display_name": plan.Name,
			"user_labels":  plan.Labels,
		},
	}

	sloResources := map[string]interface{}{}
	for _, obj := range plan.Objectives {
		sloResources[tfName("slo", obj.ResourceID)] = buildSLOResource(plan, obj)
	}
	if len(sloResources) > 0 {
		resources["google_monitoring_slo"] = sloResources
	}

	alertResources := map[string]interface{}{}
	for _, alert := range plan.Alerts {
		resource, err := buildAlertResource(plan, alert)
		if err != nil {
			return nil, err
		}
		alertResources[tfName("alert", alert.ID)] = resource
	}
	if len(alertResources) > 0 {
		resources["google_monitoring_alert_policy"] = alertResources
	}

	resources["google_monitoring_dashboard"] = map[string]interface{}{
		tfName("dashboard", plan.ServiceID): map[string]interface{}{
			"project":        plan.Project,
			"dashboard_json": dashboardJSON,
		},
	}

	return resources, nil
}

func buildSLOResource(plan planner.Plan, obj planner.ObjectivePlan) map[string]interface{} {
	return map[string]interface{}{
		"project":             plan.Project,
		"service":             fmt.Sprintf("${google_monitoring_custom_service.%s.service_id}", tfName("service", plan.ServiceID)),
		"slo_id":              obj.ResourceID,
		"display_name":        obj.DisplayName,
		"goal":                obj.Objective.Fraction,
		"rolling_period_days": plan.WindowDays,
		"user_labels":         obj.Labels,
		"windows_based_sli": map[string]interface{}{
			"window_period":          "60s",
			"good_bad_metric_filter": monitoring.UptimeFilter(obj.ResourceID),
		},
	}
}

func buildAlertResource(plan planner.Plan, alert planner.AlertPlan) (map[string]interface{}, error) {
	ref := sloRef(plan, alert.ObjectiveName)
	conditions := []map[string]interface{}{}
	for _, window := range alert.Windows {
		duration, err := monitoring.ParseWindow(window)
		if err != nil {
			return nil, fmt.Errorf("alert %s: %w", alert.ID, err)
		}
		conditions = append(conditions, map[string]interface{}{
			"display_name": fmt.Sprintf("%s %s", alert.DisplayName, window),
			"condition_threshold": map[string]interface{}{
				"filter":                  monitoring.BurnRateFilter(ref, window),
				"comparison":              "COMPARISON_GT",
				"threshold_value":         alert.BurnRate,
				"duration":                fmt.Sprintf("%ds", int64(duration.Seconds())),
				"evaluation_missing_data": "EVALUATION_MISSING_DATA_NO_OP",
			},
		})
	}

	return map[string]interface{}{
		"project":      plan.Project,
		"display_name": alert.DisplayName,
		"combiner":     "AND",
		"documentation": map[string]interface{}{
			"content":   monitoring.AlertDocumentation(alert, alert.ObjectiveName),
			"mime_type": "text/markdown",
		},
		"conditions":  conditions,
		"user_labels": alert.Labels,
		"enabled":     true,
		"severity":    monitoring.SeverityName(alert.Severity),
		"depends_on":  []string{"google_monitoring_slo." + tfName("slo", resourceID(plan, alert.ObjectiveName))},
	}, nil
}

func resourceID(plan planner.Plan, name string) string {
	for _, obj := range plan.Objectives {
		if obj.Name == name {
			return obj.ResourceID
		}
	}
	return ""
}

func sloRef(plan planner.Plan, name string) string {
	return monitoring.SLORef(plan.Project, plan.ServiceID, resourceID(plan, name))
}

func tfName(prefix, value string) string {
	normalized := strings.ToLower(value)
	var out []rune
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	if len(out) == 0 || (out[0] >= '0' && out[0] <= '9') {
		return fmt.Sprintf("%s_%s", prefix, string(out))
	}
	return string(out)
}
