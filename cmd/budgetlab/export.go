package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bayneri/budgetlab/internal/export/monitoringjson"
	"github.com/bayneri/budgetlab/internal/export/terraform"
	"github.com/bayneri/budgetlab/internal/planner"
)

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write Cloud Monitoring definitions for a service set",
	}
	cmd.AddCommand(a.exportFormatCmd("monitoring-json", "Cloud Monitoring API JSON", monitoringjson.Write))
	cmd.AddCommand(a.exportFormatCmd("terraform", "Terraform JSON for the Google provider", terraform.Write))
	return cmd
}

func (a *app) exportFormatCmd(name, short string, write func(planner.Plan, string) (string, error)) *cobra.Command {
	var (
		opts   planOptions
		outDir string
	)
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := opts.build()
			if err != nil {
				return err
			}
			path, err := write(plan, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %d SLOs and %d alert policies to %s\n", len(plan.Objectives), len(plan.Alerts), path)
			return nil
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().StringVar(&outDir, "out", "", fmt.Sprintf("output directory (default out/%s)", name))
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
