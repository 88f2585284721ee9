package terraform

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bayneri/budgetlab/internal/planner"
	"github.com/bayneri/budgetlab/internal/spec"
)

func TestWriteTerraformExport(t *testing.T) {
	preset, err := spec.PresetByName("retail")
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
	if filepath.Dir(path) != dir {
		t.Fatalf("expected output in temp dir, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"google_monitoring_custom_service",
		"google_monitoring_slo",
		"google_monitoring_alert_policy",
		"google_monitoring_dashboard",
		"select_slo_burn_rate",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %s in output", want)
		}
	}

	var cfg struct {
		Resource map[string]map[string]map[string]interface{} `json:"resource"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	slo := cfg.Resource["google_monitoring_slo"]["retail_payment_api"]
	if slo == nil {
		t.Fatalf("missing payment slo resource: %v", cfg.Resource["google_monitoring_slo"])
	}
	if slo["goal"] != 0.999 || slo["rolling_period_days"] != float64(30) {
		t.Fatalf("unexpected slo resource %v", slo)
	}
	if got := len(cfg.Resource["google_monitoring_alert_policy"]); got != 8 {
		t.Fatalf("expected 8 alert policies, got %d", got)
	}
}

func TestTFName(t *testing.T) {
	if got := tfName("slo", "retail-payment-api"); got != "retail_payment_api" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := tfName("slo", "9lives"); got != "slo_9lives" {
		t.Fatalf("unexpected name %q", got)
	}
}
