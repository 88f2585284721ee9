package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bayneri/budgetlab/internal/analyze"
	"github.com/bayneri/budgetlab/internal/downtime"
	"github.com/bayneri/budgetlab/internal/report"
	"github.com/bayneri/budgetlab/internal/slo"
)

const calcServiceID = "service"

func (a *app) calcCmd() *cobra.Command {
	var (
		objective       string
		days            string
		used            float64
		simulate        int
		scaled          float64
		failOnExhausted bool
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Error budget of a single objective",
		Example: `  budgetlab calc --slo 99.9 --days 30 --used 35
  budgetlab calc --slo 0.999 --simulate 5 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := slo.ParseObjective(objective)
			if err != nil {
				return usageError(err)
			}
			window, err := slo.ParseWindow(days)
			if err != nil {
				return usageError(err)
			}

			rng := downtime.NewRand(a.v.GetUint64("seed"))
			var (
				src  downtime.Source
				mode string
			)
			switch {
			case cmd.Flags().Changed("scaled"):
				s, err := downtime.NewScaled(scaled, rng)
				if err != nil {
					return usageError(err)
				}
				src, mode = s, downtime.ModeScaled
			case cmd.Flags().Changed("simulate"):
				s, err := downtime.NewSimulated(nil, simulate, rng)
				if err != nil {
					return usageError(err)
				}
				src, mode = s, downtime.ModeSimulate
			default:
				s, err := downtime.NewLiteral(map[string]float64{calcServiceID: used}, 0)
				if err != nil {
					return usageError(err)
				}
				src, mode = s, downtime.ModeLiteral
			}

			result, err := a.run(cmd, analyze.Options{
				Name:     "calculator",
				Mode:     mode,
				Window:   window,
				Services: []slo.ServiceObjective{{ID: calcServiceID, Objective: obj}},
				Source:   src,
			}, report.TextOptions{SkipComposite: true}, false)
			if err != nil {
				return err
			}
			return checkExhausted(result, failOnExhausted)
		},
	}
	cmd.Flags().StringVar(&objective, "slo", "", `objective as a percentage ("99.9", "99.9%") or fraction ("0.999")`)
	cmd.Flags().StringVar(&days, "days", strconv.Itoa(slo.DefaultWindowDays), "window length in whole days")
	cmd.Flags().Float64Var(&used, "used", 0, "downtime already used in the window, in minutes")
	cmd.Flags().IntVar(&simulate, "simulate", downtime.DefaultEvents, "simulate N outage events instead of --used")
	cmd.Flags().Float64Var(&scaled, "scaled", downtime.DefaultScaleFactor, "draw used downtime from [0, budget x F)")
	cmd.Flags().BoolVar(&failOnExhausted, "fail-on-exhausted", false, "exit with status 2 when the budget is exhausted")
	_ = cmd.MarkFlagRequired("slo")
	cmd.MarkFlagsMutuallyExclusive("used", "simulate", "scaled")
	return cmd
}
