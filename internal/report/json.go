package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bayneri/budgetlab/internal/analyze"
)

func WriteJSON(path string, payload interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

// WriteSummaryJSON writes the run result. Undefined burn percentages are null.
func WriteSummaryJSON(path string, result analyze.Result) error {
	return WriteJSON(path, result)
}
