// Package importer rebuilds a ServiceSet from Cloud Monitoring SLO
// definitions, read from a monitoring.json export or from the JSON the
// Cloud Monitoring API returns when listing SLOs.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	monitoringpb "cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"google.golang.org/genproto/googleapis/type/calendarperiod"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/durationpb"
	"gopkg.in/yaml.v3"

	"github.com/bayneri/budgetlab/internal/slo"
	"github.com/bayneri/budgetlab/internal/spec"
)

type Options struct {
	// Name overrides metadata.name; by default it comes from the service
	// display name.
	Name string
}

type Result struct {
	Spec     spec.Spec
	Warnings []string
}

// payload covers both our export layout and the list response shape.
type payload struct {
	Service                json.RawMessage   `json:"service"`
	SLOs                   []json.RawMessage `json:"slos"`
	ServiceLevelObjectives []json.RawMessage `json:"serviceLevelObjectives"`
}

func ImportFile(path string, opts Options) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Import(data, opts)
}

func Import(data []byte, opts Options) (Result, error) {
	var raw payload
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{}, fmt.Errorf("parse monitoring json: %w", err)
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" && len(raw.Service) > 0 {
		service := &monitoringpb.Service{}
		if err := protojson.Unmarshal(raw.Service, service); err != nil {
			return Result{}, fmt.Errorf("parse service: %w", err)
		}
		name = sanitizeName(service.GetDisplayName())
		if name == "" {
			name = lastSegment(service.GetName())
		}
	}
	if name == "" {
		return Result{}, errors.New("service set name is required when the input has no service")
	}

	var slos []*monitoringpb.ServiceLevelObjective
	for _, item := range append(raw.SLOs, raw.ServiceLevelObjectives...) {
		msg := &monitoringpb.ServiceLevelObjective{}
		if err := protojson.Unmarshal(item, msg); err != nil {
			return Result{}, fmt.Errorf("parse SLO: %w", err)
		}
		slos = append(slos, msg)
	}
	if len(slos) == 0 {
		return Result{}, errors.New("no SLOs found to import")
	}

	sort.Slice(slos, func(i, j int) bool {
		if slos[i].GetDisplayName() == slos[j].GetDisplayName() {
			return slos[i].GetName() < slos[j].GetName()
		}
		return slos[i].GetDisplayName() < slos[j].GetDisplayName()
	})

	specDoc := spec.Spec{
		APIVersion: spec.APIVersionV1,
		Kind:       spec.KindServiceSet,
		Metadata: spec.Metadata{
			Name:   name,
			Labels: commonLabels(slos),
		},
	}
	var warnings []string
	seen := map[string]bool{}
	for _, item := range slos {
		svc, days, warn, ok := sloToService(item, name)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		if !ok {
			continue
		}
		if seen[svc.Name] {
			warnings = append(warnings, fmt.Sprintf("skipping duplicate service %s", svc.Name))
			continue
		}
		seen[svc.Name] = true
		switch {
		case specDoc.Window.Days == 0:
			specDoc.Window.Days = days
		case specDoc.Window.Days != days:
			warnings = append(warnings, fmt.Sprintf("%s uses a %d-day window; imported with the set's %d-day window", svc.Name, days, specDoc.Window.Days))
		}
		specDoc.Services = append(specDoc.Services, svc)
	}

	if len(specDoc.Services) == 0 {
		return Result{}, errors.New("no supported SLOs found to import")
	}
	if labelWarn := labelWarnings(slos); labelWarn != "" {
		warnings = append(warnings, labelWarn)
	}
	if err := specDoc.Validate(); err != nil {
		return Result{}, fmt.Errorf("imported service set is invalid: %w", err)
	}
	return Result{Spec: specDoc, Warnings: warnings}, nil
}

// Marshal renders the imported document as YAML.
func Marshal(doc spec.Spec) ([]byte, error) {
	return yaml.Marshal(doc)
}

func sloToService(item *monitoringpb.ServiceLevelObjective, setName string) (spec.Service, int, string, bool) {
	name := serviceName(item.GetDisplayName(), setName)
	if name == "" {
		name = sanitizeName(lastSegment(item.GetName()))
	}
	if name == "" {
		return spec.Service{}, 0, fmt.Sprintf("skipping SLO %q: missing name", item.GetName()), false
	}

	days, warn := sloPeriod(item)
	if days == 0 {
		return spec.Service{}, 0, warn, false
	}

	objective, err := slo.ParseObjective(strconv.FormatFloat(item.GetGoal(), 'f', -1, 64))
	if err != nil {
		return spec.Service{}, 0, fmt.Sprintf("skipping %s: %v", name, err), false
	}
	if item.GetServiceLevelIndicator().GetWindowsBased() == nil && warn == "" {
		warn = fmt.Sprintf("%s: SLI is not windows-based; goal imported as an availability objective", name)
	}
	return spec.Service{
		Name:      name,
		Objective: spec.ObjectiveInput(strconv.FormatFloat(objective.Percent, 'f', -1, 64)),
	}, days, warn, true
}

// serviceName strips the "<set>-" prefix the exporters put on display names.
func serviceName(displayName, setName string) string {
	trimmed := strings.TrimSpace(displayName)
	if setName != "" {
		trimmed = strings.TrimPrefix(trimmed, setName+"-")
	}
	return sanitizeName(trimmed)
}

func sloPeriod(item *monitoringpb.ServiceLevelObjective) (int, string) {
	if rolling := item.GetRollingPeriod(); rolling != nil {
		days, err := durationToDays(rolling)
		if err != nil {
			return 0, fmt.Sprintf("skipping %s: %v", item.GetDisplayName(), err)
		}
		return days, ""
	}
	if cal := item.GetCalendarPeriod(); cal != calendarperiod.CalendarPeriod_CALENDAR_PERIOD_UNSPECIFIED {
		days := calendarToDays(cal)
		if days == 0 {
			return 0, fmt.Sprintf("skipping %s: unsupported calendar period %v", item.GetDisplayName(), cal)
		}
		return days, fmt.Sprintf("%s: calendar period %v imported as a rolling %d-day window", item.GetDisplayName(), cal, days)
	}
	return 0, fmt.Sprintf("skipping %s: missing period", item.GetDisplayName())
}

func durationToDays(duration *durationpb.Duration) (int, error) {
	if duration == nil {
		return 0, errors.New("missing rolling period")
	}
	value := duration.AsDuration()
	if value <= 0 || value%(24*time.Hour) != 0 {
		return 0, fmt.Errorf("rolling period %s is not a whole number of days", value)
	}
	return int(value / (24 * time.Hour)), nil
}

func calendarToDays(period calendarperiod.CalendarPeriod) int {
	switch period {
	case calendarperiod.CalendarPeriod_DAY:
		return 1
	case calendarperiod.CalendarPeriod_WEEK:
		return 7
	case calendarperiod.CalendarPeriod_FORTNIGHT:
		return 14
	case calendarperiod.CalendarPeriod_MONTH:
		return 30
	default:
		return 0
	}
}

func lastSegment(name string) string {
	parts := strings.Split(name, "/")
	return parts[len(parts)-1]
}

func sanitizeName(name string) string {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	var out []rune
	for _, r := range trimmed {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'), r == '_', r == '.', r == '-':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return strings.Trim(string(out), "-_.")
}

func commonLabels(slos []*monitoringpb.ServiceLevelObjective) map[string]string {
	labels := slos[0].GetUserLabels()
	if len(labels) == 0 {
		return nil
	}
	out := map[string]string{}
	for k, v := range labels {
		out[k] = v
	}
	for _, item := range slos[1:] {
		if !labelsEqual(out, item.GetUserLabels()) {
			return nil
		}
	}
	return out
}

func labelWarnings(slos []*monitoringpb.ServiceLevelObjective) string {
	base := slos[0].GetUserLabels()
	for _, item := range slos[1:] {
		if !labelsEqual(base, item.GetUserLabels()) {
			return "SLO user_labels differ; metadata.labels omitted"
		}
	}
	return ""
}

func labelsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
