package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bayneri/budgetlab/internal/slo"
	"github.com/bayneri/budgetlab/internal/spec"
)

const ManagedByLabel = "managed-by"
const ManagedByValue = "budgetlab"

type Plan struct {
	Project     string
	Name        string
	ServiceID   string
	WindowDays  int
	Labels      map[string]string
	Runbook     string
	Objectives  []ObjectivePlan
	Alerts      []AlertPlan
	Composite   CompositePlan
	PresetNotes []string
}

type ObjectivePlan struct {
	ID              string
	ResourceID      string
	DisplayName     string
	Name            string
	Objective       slo.Objective
	AllowedMinutes  float64
	PerDayAllowance float64
	Labels          map[string]string
}

// AlertPlan is one multiwindow burn-rate alert. BudgetPercent is the share
// of the whole window's budget spent by the time the long window fires, and
// TriggerMinutes is the downtime inside the long window that reaches it.
type AlertPlan struct {
	ID             string
	DisplayName    string
	ObjectiveName  string
	Type           string
	Windows        []string
	BurnRate       float64
	Severity       string
	BudgetPercent  float64
	TriggerMinutes float64
	Labels         map[string]string
	Runbook        string
	Description    string
}

type CompositePlan struct {
	Fraction       float64
	AllowedMinutes float64
}

type Options struct {
	Project string
	Labels  map[string]string
}

type burnAlert struct {
	alertType string
	windows   []string
	long      time.Duration
	burnRate  float64
	severity  string
}

var burnAlerts = []burnAlert{
	{"fast-burn", []string{"5m", "1h"}, time.Hour, 14.4, "page"},
	{"slow-burn", []string{"30m", "6h"}, 6 * time.Hour, 6.0, "ticket"},
}

func Build(specDoc spec.Spec, opts Options) (Plan, error) {
	objectives, err := specDoc.Objectives()
	if err != nil {
		return Plan{}, err
	}
	window, err := slo.NewWindow(specDoc.WindowDays())
	if err != nil {
		return Plan{}, err
	}

	labels := mergeLabels(specDoc.Metadata.Labels, opts.Labels)
	labels[ManagedByLabel] = ManagedByValue
	labels["service-set"] = specDoc.Metadata.Name

	plan := Plan{
		Project:    opts.Project,
		Name:       specDoc.Metadata.Name,
		ServiceID:  sanitizeID(specDoc.Metadata.Name),
		WindowDays: window.Days,
		Labels:     labels,
		Runbook:    specDoc.Metadata.Runbook,
	}

	composite := 1.0
	for _, obj := range objectives {
		allowed := slo.Budget(obj.Objective, window)
		id := fmt.Sprintf("%s-%s", specDoc.Metadata.Name, obj.ID)
		plan.Objectives = append(plan.Objectives, ObjectivePlan{
			ID:              id,
			ResourceID:      sanitizeID(id),
			DisplayName:     id,
			Name:            obj.ID,
			Objective:       obj.Objective,
			AllowedMinutes:  allowed,
			PerDayAllowance: slo.PerDayAllowance(allowed, window.Days),
			Labels:          labels,
		})
		composite *= obj.Objective.Fraction
		for _, ba := range burnAlerts {
			plan.Alerts = append(plan.Alerts, buildAlert(specDoc, obj, window, labels, ba))
		}
	}
	plan.Composite = CompositePlan{
		Fraction:       composite,
		AllowedMinutes: slo.ErrorBudget(composite, window.Days),
	}
	return plan, nil
}

func buildAlert(specDoc spec.Spec, obj slo.ServiceObjective, window slo.Window, labels map[string]string, ba burnAlert) AlertPlan {
	longMinutes := ba.long.Minutes()
	return AlertPlan{
		ID:             fmt.Sprintf("%s-%s-%s", specDoc.Metadata.Name, obj.ID, ba.alertType),
		DisplayName:    fmt.Sprintf("%s %s %s", specDoc.Metadata.Name, obj.ID, ba.alertType),
		ObjectiveName:  obj.ID,
		Type:           ba.alertType,
		Windows:        ba.windows,
		BurnRate:       ba.burnRate,
		Severity:       ba.severity,
		BudgetPercent:  ba.burnRate * longMinutes / window.TotalMinutes() * 100,
		TriggerMinutes: ba.burnRate * (1 - obj.Objective.Fraction) * longMinutes,
		Labels:         labels,
		Runbook:        specDoc.Metadata.Runbook,
		Description:    fmt.Sprintf("%s burn alert for %s", ba.alertType, obj.ID),
	}
}

func mergeLabels(base, extra map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func sanitizeID(input string) string {
	normalized := strings.ToLower(input)
	var out []rune
	lastDash := false
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
			lastDash = false
			continue
		}
		if !lastDash {
			out = append(out, '-')
			lastDash = true
		}
	}
	result := strings.Trim(string(out), "-")
	if result == "" {
		return "service"
	}
	return result
}

func SortedLabels(labels map[string]string) []string {
	var out []string
	for k, v := range labels {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}
