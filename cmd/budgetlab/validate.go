package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bayneri/budgetlab/internal/spec"
)

func (a *app) validateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a ServiceSet document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return usageError(errors.New("-f is required"))
			}
			doc, err := spec.Load(file)
			if err != nil {
				return usageError(err)
			}
			if err := doc.Validate(); err != nil {
				return usageError(err)
			}
			objectives, err := doc.Objectives()
			if err != nil {
				return usageError(err)
			}
			fmt.Fprintf(a.out, "ServiceSet %q is valid: %d services, %d-day window.\n", doc.Metadata.Name, len(objectives), doc.WindowDays())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a ServiceSet document")
	return cmd
}
