package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bayneri/budgetlab/internal/alerting"
)

func (a *app) explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "explain TOPIC",
		Short:     "Explain burn rates or composite SLOs",
		ValidArgs: alerting.Topics(),
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := alerting.Explain(args[0])
			if err != nil {
				return usageError(err)
			}
			fmt.Fprintln(a.out, text)
			return nil
		},
	}
}
