package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bayneri/budgetlab/internal/logging"
)

var version = "0.1.0"

// app carries the output streams and configuration shared by every command.
type app struct {
	out    io.Writer
	errOut io.Writer
	v      *viper.Viper
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fail(err)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, v: viper.New()}
	a.v.SetEnvPrefix("BUDGETLAB")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "budgetlab",
		Short: "Error budgets and composite SLOs for SRE training",
		Long: `budgetlab turns availability objectives into downtime budgets.
- Error budget: the minutes of downtime an objective allows over a window.
- Burn: the share of that budget already used; tiers say whether releases are safe.
- Composite SLO: the chance every service in a journey is up at once, and the budget that leaves.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.errOut, a.v.GetString("log-level"))
			if err != nil {
				return usageError(err)
			}
			cmd.SetContext(logging.NewContext(cmd.Context(), logger))
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().Bool("json", false, "print the run result as JSON instead of text")
	root.PersistentFlags().Uint64("seed", 0, "seed for simulated downtime (0 picks a random sequence)")
	_ = a.v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("json", root.PersistentFlags().Lookup("json"))
	_ = a.v.BindPFlag("seed", root.PersistentFlags().Lookup("seed"))

	root.AddCommand(a.calcCmd())
	root.AddCommand(a.compositeCmd())
	root.AddCommand(a.planCmd())
	root.AddCommand(a.validateCmd())
	root.AddCommand(a.exportCmd())
	root.AddCommand(a.importCmd())
	root.AddCommand(a.explainCmd())
	root.AddCommand(a.versionCmd())
	return root
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, version)
			return nil
		},
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	if err == nil {
		os.Exit(1)
	}
	type exitCoder interface {
		ExitCode() int
	}
	if coded, ok := err.(exitCoder); ok {
		os.Exit(coded.ExitCode())
	}
	os.Exit(1)
}
