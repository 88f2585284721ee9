package planner

import (
	"fmt"
	"io"
	"strings"
)

func Render(w io.Writer, plan Plan) {
	if plan.Project != "" {
		fmt.Fprintf(w, "Project: %s\n", plan.Project)
	}
	fmt.Fprintf(w, "Service set: %s\n", plan.Name)
	fmt.Fprintf(w, "Window: %d days = %d minutes\n", plan.WindowDays, plan.WindowDays*24*60)
	if len(plan.Labels) > 0 {
		fmt.Fprintf(w, "Labels: %s\n", strings.Join(SortedLabels(plan.Labels), ", "))
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Objectives:")
	for _, obj := range plan.Objectives {
		fmt.Fprintf(w, "- %-12s %7.3f%%  (fraction %.6f)  budget %8.2f min, %.2f min/day\n",
			obj.Name, obj.Objective.Percent, obj.Objective.Fraction, obj.AllowedMinutes, obj.PerDayAllowance)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Alerts:")
	for _, alert := range plan.Alerts {
		fmt.Fprintf(w, "- %s (%s, %v, %.1fx, %s): fires after %.2f min down in %s, %.1f%% of budget\n",
			alert.ObjectiveName, alert.Type, alert.Windows, alert.BurnRate, alert.Severity,
			alert.TriggerMinutes, alert.Windows[len(alert.Windows)-1], alert.BudgetPercent)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Composite: %.6f (%.4f%%), budget %.2f min\n",
		plan.Composite.Fraction, plan.Composite.Fraction*100, plan.Composite.AllowedMinutes)

	if len(plan.PresetNotes) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Notes:")
		for _, note := range plan.PresetNotes {
			fmt.Fprintf(w, "- %s\n", note)
		}
	}
}
