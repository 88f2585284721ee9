package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bayneri/budgetlab/internal/downtime"
	"github.com/bayneri/budgetlab/internal/slo"
	"github.com/bayneri/budgetlab/internal/spec"
)

type setOptions struct {
	file   string
	preset string
}

func (o *setOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "path to a ServiceSet document")
	cmd.Flags().StringVar(&o.preset, "preset", "", fmt.Sprintf("built-in service set (%s); default %s when no file is given", strings.Join(spec.PresetNames(), ", "), spec.DefaultPreset))
}

// load returns the service set and any teaching notes that come with it.
func (o *setOptions) load() (spec.Spec, []string, error) {
	if o.file != "" && o.preset != "" {
		return spec.Spec{}, nil, errors.New("use either -f or --preset, not both")
	}
	if o.file != "" {
		doc, err := spec.Load(o.file)
		if err != nil {
			return spec.Spec{}, nil, err
		}
		if err := doc.Validate(); err != nil {
			return spec.Spec{}, nil, err
		}
		return doc, nil, nil
	}
	name := o.preset
	if name == "" {
		name = spec.DefaultPreset
	}
	p, err := spec.PresetByName(name)
	if err != nil {
		return spec.Spec{}, nil, err
	}
	return p.Spec(), p.Notes, nil
}

type sourceOptions struct {
	used     string
	simulate int
	events   string
	scaled   float64
	changed  func(name string) bool
}

func (o *sourceOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.used, "used", "", "used downtime minutes per service, svc=min,...")
	cmd.Flags().IntVar(&o.simulate, "simulate", downtime.DefaultEvents, "simulate N outage events per service instead of literal downtime")
	cmd.Flags().StringVar(&o.events, "events", "", "simulated event counts per service, svc=n,... (implies simulation)")
	cmd.Flags().Float64Var(&o.scaled, "scaled", downtime.DefaultScaleFactor, "draw used downtime uniformly from [0, budget x F); above 1 some budgets overrun")
	cmd.MarkFlagsMutuallyExclusive("used", "simulate")
	cmd.MarkFlagsMutuallyExclusive("used", "events")
	cmd.MarkFlagsMutuallyExclusive("used", "scaled")
	cmd.MarkFlagsMutuallyExclusive("simulate", "scaled")
	cmd.MarkFlagsMutuallyExclusive("events", "scaled")
	o.changed = cmd.Flags().Changed
}

// build picks one downtime source for the whole run from the flags actually
// given, so an explicit zero is rejected rather than read as unset. Document
// usedMinutes feed literal mode; document events feed simulate mode.
func (o *sourceOptions) build(doc spec.Spec, objectives []slo.ServiceObjective, rng downtime.Rand) (downtime.Source, string, error) {
	known := map[string]bool{}
	for _, obj := range objectives {
		known[obj.ID] = true
	}

	switch {
	case o.set("scaled"):
		src, err := downtime.NewScaled(o.scaled, rng)
		if err != nil {
			return nil, "", usageError(err)
		}
		return src, downtime.ModeScaled, nil
	case o.set("simulate") || o.set("events"):
		counts := doc.EventCounts()
		overrides, err := spec.ParseCounts(o.events)
		if err != nil {
			return nil, "", usageError(err)
		}
		if err := checkKnown("--events", overrides, known); err != nil {
			return nil, "", err
		}
		for k, n := range overrides {
			counts[k] = n
		}
		src, err := downtime.NewSimulated(counts, o.simulate, rng)
		if err != nil {
			return nil, "", usageError(err)
		}
		return src, downtime.ModeSimulate, nil
	default:
		minutes := doc.UsedMinutes()
		overrides, err := spec.ParseMinutes(o.used)
		if err != nil {
			return nil, "", usageError(err)
		}
		if err := checkKnown("--used", overrides, known); err != nil {
			return nil, "", err
		}
		for k, m := range overrides {
			minutes[k] = m
		}
		src, err := downtime.NewLiteral(minutes, 0)
		if err != nil {
			return nil, "", usageError(err)
		}
		return src, downtime.ModeLiteral, nil
	}
}

func (o *sourceOptions) set(name string) bool {
	if o.changed == nil {
		return false
	}
	return o.changed(name)
}

func checkKnown[V any](flag string, values map[string]V, known map[string]bool) error {
	for id := range values {
		if !known[id] {
			return usageError(fmt.Errorf("%s: unknown service %q", flag, id))
		}
	}
	return nil
}

// windowFor prefers --days and falls back to the document's window.
func windowFor(doc spec.Spec, days string) (slo.Window, error) {
	if strings.TrimSpace(days) != "" {
		return slo.ParseWindow(days)
	}
	return slo.NewWindow(doc.WindowDays())
}
