package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, retailResult(t), TextOptions{Notes: []string{"More services => lower end-to-end reliability."}})
	out := buf.String()
	for _, want := range []string{
		"--- payment_api ---",
		"SLO: 99.900% over last 30 days",
		"Allowed downtime (error budget): 43.20 minutes (43m)",
		"Remaining error budget: 8.20 minutes (8m)",
		"Error budget burn: 81.02%",
		"at-risk",
		"Per-day allowed downtime (avg): 1.44 minutes/day (1m)",
		"Overrun of error budget: 6.80 minutes (7m)",
		"Composite SLO fraction : 0.995507",
		"Weakest service: catalog",
		"Teaching notes:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderTextUndefinedBudget(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, undefinedResult(), TextOptions{SkipComposite: true})
	out := buf.String()
	if !strings.Contains(out, "Error budget burn: INF") {
		t.Fatalf("expected INF burn:\n%s", out)
	}
	if !strings.Contains(out, "Overrun of error budget: 3.00 minutes (3m)") {
		t.Fatalf("expected overrun line:\n%s", out)
	}
	if strings.Contains(out, "Per-day allowed") || strings.Contains(out, "Composite") {
		t.Fatalf("unexpected sections:\n%s", out)
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, retailResult(t))
	out := buf.String()
	for _, want := range []string{"SERVICE", "payment_api", "43.20", "81.02%", "COMPOSITE", "99.5507%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
}
