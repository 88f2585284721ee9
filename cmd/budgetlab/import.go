package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bayneri/budgetlab/internal/importer"
	"github.com/bayneri/budgetlab/internal/logging"
)

func (a *app) importCmd() *cobra.Command {
	var input, output, name string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Rebuild a ServiceSet from Cloud Monitoring SLO JSON",
		Example: `  budgetlab export monitoring-json --preset retail --project demo --out out
  budgetlab import -i out/monitoring.json -o services.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.FromContext(cmd.Context())
			if input == "" {
				return usageError(errors.New("-i is required"))
			}
			result, err := importer.ImportFile(input, importer.Options{Name: name})
			if err != nil {
				return err
			}
			for _, warning := range result.Warnings {
				log.Warn("import", "detail", warning)
			}
			data, err := importer.Marshal(result.Spec)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := a.out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Imported %d services into %s\n", len(result.Spec.Services), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "in", "i", "", "monitoring JSON file (export output or an API list response)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "write the ServiceSet here instead of stdout")
	cmd.Flags().StringVar(&name, "name", "", "metadata.name for the imported set")
	return cmd
}
