package analyze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bayneri/budgetlab/internal/burn"
	"github.com/bayneri/budgetlab/internal/composite"
	"github.com/bayneri/budgetlab/internal/downtime"
	"github.com/bayneri/budgetlab/internal/logging"
	"github.com/bayneri/budgetlab/internal/slo"
)

type Options struct {
	Name     string
	Mode     string
	Window   slo.Window
	Services []slo.ServiceObjective
	Source   downtime.Source
	Now      func() time.Time
}

// Run performs one batch pass over every service. It either returns a
// complete Result or an error; no partial result is produced.
func Run(ctx context.Context, opts Options) (Result, error) {
	log := logging.FromContext(ctx)

	if len(opts.Services) == 0 {
		return Result{}, slo.ErrNoServicesConfigured
	}
	if err := opts.Window.Validate(); err != nil {
		return Result{}, err
	}
	if opts.Source == nil {
		return Result{}, errors.New("downtime source is required")
	}
	if err := checkServices(opts.Services); err != nil {
		return Result{}, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Mode == "" {
		opts.Mode = downtime.ModeLiteral
	}

	result := Result{
		SchemaVersion: SchemaVersion,
		RunID:         uuid.New().String(),
		Name:          opts.Name,
		GeneratedAt:   opts.Now().UTC(),
		Mode:          opts.Mode,
		Window: Window{
			Days:         opts.Window.Days,
			TotalMinutes: opts.Window.TotalMinutes(),
		},
	}
	log.Debug("starting run", "run_id", result.RunID, "services", len(opts.Services), "window_days", opts.Window.Days, "mode", opts.Mode)

	var tiers []burn.Tier
	for _, obj := range opts.Services {
		allowed := slo.Budget(obj.Objective, opts.Window)
		used, err := opts.Source.Used(downtime.Request{ServiceID: obj.ID, Allowed: allowed})
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", obj.ID, err)
		}
		if used.Minutes < 0 {
			return Result{}, fmt.Errorf("%s: %w: negative used downtime %v", obj.ID, slo.ErrInvalidDowntime, used.Minutes)
		}
		item := computeService(obj, opts.Window, allowed, used)
		log.Debug("service computed", "service", item.ID, "allowed_min", item.AllowedMinutes, "used_min", item.UsedMinutes, "tier", item.Tier)
		result.Services = append(result.Services, item)
		tiers = append(tiers, item.Tier)
	}

	agg, err := composite.Compute(opts.Services, opts.Window)
	if err != nil {
		return Result{}, err
	}
	result.Composite = agg
	result.Status = burn.Worst(tiers...)
	log.Debug("composite computed", "fraction", agg.Fraction, "allowed_min", agg.AllowedMinutes, "status", result.Status)

	return result, nil
}

func checkServices(services []slo.ServiceObjective) error {
	seen := map[string]bool{}
	for _, obj := range services {
		if obj.ID == "" {
			return fmt.Errorf("%w: service id is required", slo.ErrInvalidObjective)
		}
		if seen[obj.ID] {
			return fmt.Errorf("%w: duplicate service id %q", slo.ErrInvalidObjective, obj.ID)
		}
		seen[obj.ID] = true
		if err := obj.Objective.Validate(); err != nil {
			return fmt.Errorf("%s: %w", obj.ID, err)
		}
	}
	return nil
}

// Exhausted lists services whose budget is used up.
func (r Result) Exhausted() []string {
	var out []string
	for _, svc := range r.Services {
		if svc.Tier == burn.TierExhausted {
			out = append(out, svc.ID)
		}
	}
	return out
}
