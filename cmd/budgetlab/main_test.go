package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bayneri/budgetlab/internal/slo"
)

const retailFile = "../../internal/spec/testdata/retail.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var coded exitError
	if !errors.As(err, &coded) {
		t.Fatalf("expected exit error, got %v", err)
	}
	return coded.ExitCode()
}

func TestCalcLiteral(t *testing.T) {
	out, err := execute(t, "calc", "--slo", "99.9", "--days", "30", "--used", "35")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	for _, want := range []string{
		"Allowed downtime (error budget): 43.20 minutes (43m)",
		"Remaining error budget: 8.20 minutes (8m)",
		"Error budget burn: 81.02%",
		"at-risk",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Composite") {
		t.Fatalf("calculator should not print a composite section:\n%s", out)
	}
}

func TestCalcFailOnExhausted(t *testing.T) {
	out, err := execute(t, "calc", "--slo", "0.999", "--used", "50", "--fail-on-exhausted")
	if err == nil {
		t.Fatalf("expected exhausted error")
	}
	if code := exitCode(t, err); code != exitExhausted {
		t.Fatalf("expected exit %d, got %d", exitExhausted, code)
	}
	if !strings.Contains(out, "Overrun of error budget: 6.80 minutes") {
		t.Fatalf("report should still be printed:\n%s", out)
	}
}

func TestCalcRejectsInput(t *testing.T) {
	_, err := execute(t, "calc", "--slo", "100")
	if !errors.Is(err, slo.ErrInvalidObjective) {
		t.Fatalf("expected invalid objective, got %v", err)
	}
	if code := exitCode(t, err); code != exitUsage {
		t.Fatalf("expected exit %d, got %d", exitUsage, code)
	}

	if _, err := execute(t, "calc", "--slo", "99.9", "--days", "0"); !errors.Is(err, slo.ErrInvalidWindow) {
		t.Fatalf("expected invalid window, got %v", err)
	}
	if _, err := execute(t, "calc", "--slo", "99.9", "--used", "-1"); !errors.Is(err, slo.ErrInvalidDowntime) {
		t.Fatalf("expected invalid downtime, got %v", err)
	}
	if _, err := execute(t, "calc", "--slo", "99.9", "--days", "7.5"); !errors.Is(err, slo.ErrInvalidWindow) {
		t.Fatalf("expected invalid window for fractional days, got %v", err)
	}
	if _, err := execute(t, "calc", "--slo", "99.9", "--used", "1", "--simulate", "3"); err == nil {
		t.Fatalf("expected error for conflicting modes")
	}
}

func TestCalcJSON(t *testing.T) {
	out, err := execute(t, "calc", "--slo", "99.9", "--used", "35", "--json")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	var decoded struct {
		Mode     string `json:"mode"`
		Services []struct {
			ID             string  `json:"id"`
			AllowedMinutes float64 `json:"allowedMinutes"`
			Tier           string  `json:"tier"`
		} `json:"services"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if decoded.Mode != "literal" || len(decoded.Services) != 1 || decoded.Services[0].Tier != "at-risk" {
		t.Fatalf("unexpected result %+v", decoded)
	}
}

func TestCalcSimulateSeeded(t *testing.T) {
	first, err := execute(t, "calc", "--slo", "99.9", "--simulate", "5", "--seed", "7", "--json")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	second, err := execute(t, "calc", "--slo", "99.9", "--simulate", "5", "--seed", "7", "--json")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	var a, b struct {
		Services []struct {
			UsedMinutes float64   `json:"usedMinutes"`
			Events      []float64 `json:"events"`
		} `json:"services"`
	}
	if err := json.Unmarshal([]byte(first), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := json.Unmarshal([]byte(second), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(a.Services[0].Events) != 5 {
		t.Fatalf("expected 5 events, got %v", a.Services[0].Events)
	}
	if a.Services[0].UsedMinutes != b.Services[0].UsedMinutes {
		t.Fatalf("same seed gave %v and %v", a.Services[0].UsedMinutes, b.Services[0].UsedMinutes)
	}
}

func TestCompositeFromFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "summary.csv")
	out, err := execute(t, "composite", "-f", retailFile, "--out", csvPath,
		"--report-dir", dir, "--format", "md,json,prom", "--fail-on-exhausted")
	if err == nil {
		t.Fatalf("expected catalog to exhaust its budget")
	}
	if code := exitCode(t, err); code != exitExhausted {
		t.Fatalf("expected exit %d, got %d", exitExhausted, code)
	}
	if !strings.Contains(err.Error(), "catalog") {
		t.Fatalf("expected catalog in %q", err)
	}
	for _, want := range []string{"--- payment_api ---", "Composite SLO fraction : 0.995507", "COMPOSITE", "Results saved to"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	for _, name := range []string{"summary.csv", "summary.md", "summary.json", "summary.prom"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.HasPrefix(string(data), "service,slo_pct,slo_frac,allowed_min,used_min,remaining_min,burn_pct\n") {
		t.Fatalf("unexpected csv:\n%s", data)
	}
}

func TestCompositeOverridesAndErrors(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "composite", "--preset", "retail", "--used", "catalog=10,backend=1",
		"--days", "7", "--out", "", "--table=false")
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	if !strings.Contains(out, "Window: 7 days = 10080 minutes") || strings.Contains(out, "Results saved") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Teaching notes:") {
		t.Fatalf("expected preset notes:\n%s", out)
	}

	if _, err := execute(t, "composite", "--used", "nosuch=3", "--out", ""); err == nil {
		t.Fatalf("expected error for unknown service")
	}
	if _, err := execute(t, "composite", "--preset", "nosuch", "--out", ""); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
	if _, err := execute(t, "composite", "-f", retailFile, "--preset", "retail", "--out", ""); err == nil {
		t.Fatalf("expected error for file and preset together")
	}
	if _, err := execute(t, "composite", "--report-dir", dir, "--format", "xml", "--out", ""); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := execute(t, "composite", "--simulate", "0", "--events", "frontend=0", "--out", ""); !errors.Is(err, slo.ErrInvalidDowntime) {
		t.Fatalf("expected invalid downtime, got %v", err)
	}
}

func TestCompositeRejectsExplicitZero(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want error
	}{
		{"simulate", []string{"--simulate", "0"}, slo.ErrInvalidDowntime},
		{"scaled", []string{"--scaled", "0"}, slo.ErrInvalidDowntime},
		{"days", []string{"--days", "0"}, slo.ErrInvalidWindow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"composite", "--preset", "retail", "--out", ""}, tc.args...)
			out, err := execute(t, args...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if code := exitCode(t, err); code != exitUsage {
				t.Fatalf("expected exit %d, got %d", exitUsage, code)
			}
			if out != "" {
				t.Fatalf("expected no report, got:\n%s", out)
			}
		})
	}
}

func TestCompositeEventsOnlyUsesDefaultCount(t *testing.T) {
	out, err := execute(t, "composite", "--preset", "retail", "--events", "catalog=2", "--seed", "3", "--out", "", "--json")
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	var decoded struct {
		Mode     string `json:"mode"`
		Services []struct {
			ID     string    `json:"id"`
			Events []float64 `json:"events"`
		} `json:"services"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if decoded.Mode != "simulate" {
		t.Fatalf("expected simulate mode, got %q", decoded.Mode)
	}
	for _, svc := range decoded.Services {
		want := 5
		if svc.ID == "catalog" {
			want = 2
		}
		if len(svc.Events) != want {
			t.Fatalf("%s: expected %d events, got %d", svc.ID, want, len(svc.Events))
		}
	}
}

func TestCompositeUnwritableCSVPrintsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "summary.csv")
	out, err := execute(t, "composite", "--preset", "retail", "--out", path)
	if err == nil {
		t.Fatalf("expected error for unwritable csv path")
	}
	if out != "" {
		t.Fatalf("expected no report before the failure, got:\n%s", out)
	}
}

func TestCompositeScaledSeeded(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")
	for _, path := range []string{first, second} {
		if _, err := execute(t, "composite", "--scaled", "1.5", "--seed", "42", "--out", path); err != nil {
			t.Fatalf("composite: %v", err)
		}
	}
	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("seeded runs differ:\n%s\n%s", a, b)
	}
}

func TestPlanAndValidate(t *testing.T) {
	out, err := execute(t, "plan", "--preset", "checkout")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(out, "Window: 28 days") || !strings.Contains(out, "fast-burn") || !strings.Contains(out, "Notes:") {
		t.Fatalf("unexpected plan:\n%s", out)
	}

	out, err = execute(t, "validate", "-f", retailFile)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, `ServiceSet "retail" is valid: 4 services, 30-day window.`) {
		t.Fatalf("unexpected validate output %q", out)
	}
	if _, err := execute(t, "validate"); err == nil {
		t.Fatalf("expected error without -f")
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "export", "terraform", "-f", retailFile, "--out", dir); err == nil {
		t.Fatalf("expected error without --project")
	}
	out, err := execute(t, "export", "terraform", "-f", retailFile, "--project", "demo", "--out", dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Wrote 4 SLOs and 8 alert policies") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "main.tf.json")); err != nil {
		t.Fatalf("expected terraform output: %v", err)
	}
	if _, err := execute(t, "export", "monitoring-json", "--preset", "single", "--project", "demo", "--out", dir); err != nil {
		t.Fatalf("export monitoring-json: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "monitoring.json")); err != nil {
		t.Fatalf("expected monitoring json output: %v", err)
	}
}

func TestExplainAndVersion(t *testing.T) {
	out, err := execute(t, "explain", "composite")
	if err != nil || !strings.Contains(out, "composite SLO") {
		t.Fatalf("explain composite: %v\n%s", err, out)
	}
	if _, err := execute(t, "explain", "nosuch"); err == nil {
		t.Fatalf("expected error for unknown topic")
	}
	out, err = execute(t, "version")
	if err != nil || strings.TrimSpace(out) != version {
		t.Fatalf("version: %v %q", err, out)
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv("BUDGETLAB_LOG_LEVEL", "loud")
	if _, err := execute(t, "version"); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

func TestImportAfterExport(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "export", "monitoring-json", "--preset", "checkout", "--project", "demo", "--out", dir); err != nil {
		t.Fatalf("export: %v", err)
	}
	target := filepath.Join(dir, "services.yaml")
	out, err := execute(t, "import", "-i", filepath.Join(dir, "monitoring.json"), "-o", target)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 5 services") {
		t.Fatalf("unexpected output %q", out)
	}
	out, err = execute(t, "validate", "-f", target)
	if err != nil {
		t.Fatalf("validate imported: %v", err)
	}
	if !strings.Contains(out, "5 services, 28-day window") {
		t.Fatalf("unexpected validate output %q", out)
	}
	if _, err := execute(t, "import"); err == nil {
		t.Fatalf("expected error without -i")
	}
}
