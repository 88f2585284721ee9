package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteSummaryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "summary.json")
	if err := WriteSummaryJSON(path, undefinedResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var payload struct {
		Services []map[string]interface{} `json:"services"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	burn, ok := payload.Services[0]["burnPercent"]
	if !ok || burn != nil {
		t.Fatalf("expected null burnPercent, got %v (present=%v)", burn, ok)
	}
}

func TestWriteSummaryJSONRetail(t *testing.T) {
	result := retailResult(t)
	path := filepath.Join(t.TempDir(), "summary.json")
	if err := WriteSummaryJSON(path, result); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var decoded struct {
		SchemaVersion string `json:"schemaVersion"`
		RunID         string `json:"runId"`
		Status        string `json:"status"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.RunID != result.RunID || decoded.SchemaVersion == "" {
		t.Fatalf("unexpected header %+v", decoded)
	}
	if decoded.Status != "exhausted" {
		t.Fatalf("expected exhausted status, got %q", decoded.Status)
	}
}
