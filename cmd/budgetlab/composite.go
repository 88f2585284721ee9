package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bayneri/budgetlab/internal/analyze"
	"github.com/bayneri/budgetlab/internal/downtime"
	"github.com/bayneri/budgetlab/internal/logging"
	"github.com/bayneri/budgetlab/internal/report"
)

func (a *app) compositeCmd() *cobra.Command {
	var (
		set             setOptions
		src             sourceOptions
		days            string
		csvPath         string
		reportDir       string
		formats         string
		table           bool
		failOnExhausted bool
	)
	cmd := &cobra.Command{
		Use:   "composite",
		Short: "Per-service budgets and the composite SLO of a service set",
		Example: `  budgetlab composite --preset retail --simulate 5 --seed 42
  budgetlab composite -f services.yaml --used frontend=12,catalog=90 --report-dir out --format md,json,prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.FromContext(cmd.Context())

			doc, notes, err := set.load()
			if err != nil {
				return usageError(err)
			}
			objectives, err := doc.Objectives()
			if err != nil {
				return usageError(err)
			}
			window, err := windowFor(doc, days)
			if err != nil {
				return usageError(err)
			}
			outFormats, err := parseFormats(formats)
			if err != nil {
				return err
			}
			source, mode, err := src.build(doc, objectives, downtime.NewRand(a.v.GetUint64("seed")))
			if err != nil {
				return err
			}
			log.Debug("service set loaded", "name", doc.Metadata.Name, "services", len(objectives), "mode", mode)

			// Output locations are claimed before anything is printed.
			var export *report.CSVExport
			if csvPath != "" {
				if export, err = report.CreateCSV(csvPath); err != nil {
					return err
				}
			}
			if reportDir != "" {
				if err := os.MkdirAll(reportDir, 0o755); err != nil {
					if export != nil {
						_ = export.Discard()
					}
					return fmt.Errorf("create report dir: %w", err)
				}
			}

			result, err := a.run(cmd, analyze.Options{
				Name:     doc.Metadata.Name,
				Mode:     mode,
				Window:   window,
				Services: objectives,
				Source:   source,
			}, report.TextOptions{Notes: notes}, table)
			if err != nil {
				if export != nil {
					_ = export.Discard()
				}
				return err
			}

			if export != nil {
				if err := export.Write(report.Rows(result)); err != nil {
					return err
				}
				if !a.v.GetBool("json") {
					fmt.Fprintf(a.out, "\nResults saved to %s\n", export.Path())
				}
			}
			if reportDir != "" {
				if err := a.writeReports(cmd, reportDir, outFormats, result, notes); err != nil {
					return err
				}
			}
			return checkExhausted(result, failOnExhausted)
		},
	}
	set.addFlags(cmd)
	src.addFlags(cmd)
	cmd.Flags().StringVar(&days, "days", "", "window length in whole days (default: the service set's window)")
	cmd.Flags().StringVar(&csvPath, "out", report.DefaultCSVPath, "CSV summary path; empty disables the CSV")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "directory for summary reports")
	cmd.Flags().StringVar(&formats, "format", "md,json", "report formats written to --report-dir: md, json, prom")
	cmd.Flags().BoolVar(&table, "table", true, "print the summary table")
	cmd.Flags().BoolVar(&failOnExhausted, "fail-on-exhausted", false, "exit with status 2 when any budget is exhausted")
	return cmd
}
