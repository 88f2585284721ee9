package main

import (
	"github.com/spf13/cobra"

	"github.com/bayneri/budgetlab/internal/planner"
	"github.com/bayneri/budgetlab/internal/spec"
)

type planOptions struct {
	set     setOptions
	project string
	labels  string
}

func (o *planOptions) addFlags(cmd *cobra.Command) {
	o.set.addFlags(cmd)
	cmd.Flags().StringVar(&o.project, "project", "", "GCP project ID for generated resources")
	cmd.Flags().StringVar(&o.labels, "labels", "", "extra labels in key=value,key=value format")
}

func (o *planOptions) build() (planner.Plan, error) {
	labels, err := spec.ParseLabels(o.labels)
	if err != nil {
		return planner.Plan{}, usageError(err)
	}
	doc, notes, err := o.set.load()
	if err != nil {
		return planner.Plan{}, usageError(err)
	}
	plan, err := planner.Build(doc, planner.Options{Project: o.project, Labels: labels})
	if err != nil {
		return planner.Plan{}, usageError(err)
	}
	plan.PresetNotes = notes
	return plan, nil
}

func (a *app) planCmd() *cobra.Command {
	var opts planOptions
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show budgets and burn-rate alert thresholds for a service set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := opts.build()
			if err != nil {
				return err
			}
			planner.Render(a.out, plan)
			return nil
		},
	}
	opts.addFlags(cmd)
	return cmd
}
