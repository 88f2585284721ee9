package monitoringjson

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/bayneri/budgetlab/internal/planner"
	"github.com/bayneri/budgetlab/internal/spec"
)

func TestWriteMonitoringJSON(t *testing.T) {
	preset, err := spec.PresetByName("checkout")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	plan, err := planner.Build(preset.Spec(), planner.Options{Project: "demo"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	dir := t.TempDir()
	path, err := Write(plan, dir)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var payload struct {
		Service       map[string]interface{}   `json:"service"`
		SLOs          []map[string]interface{} `json:"slos"`
		AlertPolicies []map[string]interface{} `json:"alertPolicies"`
		Dashboard     map[string]interface{}   `json:"dashboard"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Service == nil || payload.Dashboard == nil {
		t.Fatalf("expected service and dashboard payloads")
	}
	if len(payload.SLOs) != len(plan.Objectives) {
		t.Fatalf("expected %d slos, got %d", len(plan.Objectives), len(payload.SLOs))
	}
	if len(payload.AlertPolicies) != len(plan.Alerts) {
		t.Fatalf("expected %d alert policies, got %d", len(plan.Alerts), len(payload.AlertPolicies))
	}
	if payload.SLOs[0]["rollingPeriod"] != "2419200s" {
		t.Fatalf("expected 28d rolling period, got %v", payload.SLOs[0]["rollingPeriod"])
	}
}
