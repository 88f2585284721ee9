package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bayneri/budgetlab/internal/analyze"
	"github.com/bayneri/budgetlab/internal/logging"
	"github.com/bayneri/budgetlab/internal/report"
)

var reportFormats = map[string]string{
	"md":   "summary.md",
	"json": "summary.json",
	"prom": "summary.prom",
}

func parseFormats(raw string) ([]string, error) {
	var formats []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := reportFormats[name]; !ok {
			return nil, usageError(fmt.Errorf("unknown report format %q (use md, json, prom)", name))
		}
		formats = append(formats, name)
	}
	return formats, nil
}

// run executes the engine and prints the result as text or JSON.
func (a *app) run(cmd *cobra.Command, opts analyze.Options, textOpts report.TextOptions, table bool) (analyze.Result, error) {
	result, err := analyze.Run(cmd.Context(), opts)
	if err != nil {
		return analyze.Result{}, err
	}
	if a.v.GetBool("json") {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return result, enc.Encode(result)
	}
	report.RenderText(a.out, result, textOpts)
	if table {
		fmt.Fprintln(a.out, "")
		report.RenderTable(a.out, result)
	}
	return result, nil
}

func (a *app) writeReports(cmd *cobra.Command, dir string, formats []string, result analyze.Result, notes []string) error {
	log := logging.FromContext(cmd.Context())
	for _, format := range formats {
		path := filepath.Join(dir, reportFormats[format])
		var err error
		switch format {
		case "md":
			err = report.WriteMarkdownSummary(path, result, report.Options{Explain: true, Notes: notes})
		case "json":
			err = report.WriteSummaryJSON(path, result)
		case "prom":
			err = report.WritePrometheus(path, result)
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Info("report written", "format", format, "path", path)
	}
	return nil
}

func checkExhausted(result analyze.Result, enabled bool) error {
	if !enabled {
		return nil
	}
	if exhausted := result.Exhausted(); len(exhausted) > 0 {
		return exhaustedError(exhausted)
	}
	return nil
}
