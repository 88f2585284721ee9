package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/bayneri/budgetlab/internal/analyze"
)

const DefaultCSVPath = "composite_slo_summary.csv"

var csvHeader = []string{"service", "slo_pct", "slo_frac", "allowed_min", "used_min", "remaining_min", "burn_pct"}

// Row is one service line of the CSV summary. BurnPercent is nil when the
// service has no budget.
type Row struct {
	Service          string
	SLOPercent       float64
	SLOFraction      float64
	AllowedMinutes   float64
	UsedMinutes      float64
	RemainingMinutes float64
	BurnPercent      *float64
}

func Rows(result analyze.Result) []Row {
	rows := make([]Row, 0, len(result.Services))
	for _, svc := range result.Services {
		rows = append(rows, Row{
			Service:          svc.ID,
			SLOPercent:       svc.ObjectivePercent,
			SLOFraction:      svc.ObjectiveFraction,
			AllowedMinutes:   svc.AllowedMinutes,
			UsedMinutes:      svc.UsedMinutes,
			RemainingMinutes: svc.RemainingMinutes,
			BurnPercent:      svc.BurnPercent,
		})
	}
	return rows
}

func (r Row) record() []string {
	burn := "INF"
	if r.BurnPercent != nil {
		burn = formatFloat(*r.BurnPercent)
	}
	return []string{
		r.Service,
		formatFloat(r.SLOPercent),
		formatFloat(r.SLOFraction),
		formatFloat(r.AllowedMinutes),
		formatFloat(r.UsedMinutes),
		formatFloat(r.RemainingMinutes),
		burn,
	}
}

// WriteCSV creates or truncates path and writes the header plus one record
// per row. The file is closed on every path.
func WriteCSV(path string, rows []Row) error {
	export, err := CreateCSV(path)
	if err != nil {
		return err
	}
	return export.Write(rows)
}

// CSVExport is a summary file opened before the run it records, so an
// unwritable path fails before any report is printed.
type CSVExport struct {
	path string
	f    *os.File
}

// CreateCSV creates or truncates path and keeps it open until Write or
// Discard.
func CreateCSV(path string) (*CSVExport, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &CSVExport{path: path, f: f}, nil
}

func (c *CSVExport) Path() string { return c.path }

// Write writes the header and rows, then closes the file.
func (c *CSVExport) Write(rows []Row) (err error) {
	defer func() {
		if cerr := c.f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", c.path, cerr)
		}
	}()

	w := csv.NewWriter(c.f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row.record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Discard closes and removes a file whose run failed.
func (c *CSVExport) Discard() error {
	c.f.Close()
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
