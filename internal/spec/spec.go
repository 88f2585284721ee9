package spec

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bayneri/budgetlab/internal/slo"
)

const (
	APIVersionV1   = "budgetlab.dev/v1"
	KindServiceSet = "ServiceSet"
)

type Spec struct {
	APIVersion string     `yaml:"apiVersion"`
	Kind       string     `yaml:"kind"`
	Metadata   Metadata   `yaml:"metadata"`
	Window     WindowSpec `yaml:"window"`
	Services   []Service  `yaml:"services"`
}

type Metadata struct {
	Name    string            `yaml:"name"`
	Labels  map[string]string `yaml:"labels,omitempty"`
	Runbook string            `yaml:"runbook,omitempty"`
}

type WindowSpec struct {
	Days int `yaml:"days,omitempty"`
}

type Service struct {
	Name        string         `yaml:"name"`
	Objective   ObjectiveInput `yaml:"objective"`
	UsedMinutes *float64       `yaml:"usedMinutes,omitempty"`
	Events      *int           `yaml:"events,omitempty"`
}

// ObjectiveInput keeps the objective exactly as written, so 99.9 and "99.9%"
// both reach the normalizer untouched.
type ObjectiveInput string

func (o *ObjectiveInput) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: objective must be a scalar", node.Line)
	}
	*o = ObjectiveInput(node.Value)
	return nil
}

var serviceNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

// WindowDays applies the default window when none is set.
func (s Spec) WindowDays() int {
	if s.Window.Days == 0 {
		return slo.DefaultWindowDays
	}
	return s.Window.Days
}

func (s Spec) Validate() error {
	var errs []string
	if s.APIVersion != APIVersionV1 {
		errs = append(errs, fmt.Sprintf("apiVersion must be %q", APIVersionV1))
	}
	if s.Kind != KindServiceSet {
		errs = append(errs, fmt.Sprintf("kind must be %q", KindServiceSet))
	}
	if strings.TrimSpace(s.Metadata.Name) == "" {
		errs = append(errs, "metadata.name is required")
	}
	if s.Window.Days < 0 {
		errs = append(errs, fmt.Sprintf("window.days: %v", slo.ErrInvalidWindow))
	}
	if len(s.Services) == 0 {
		errs = append(errs, "at least one service is required")
	}

	seen := map[string]bool{}
	for i, svc := range s.Services {
		prefix := fmt.Sprintf("services[%d]", i)
		if !serviceNameRe.MatchString(svc.Name) {
			errs = append(errs, fmt.Sprintf("%s.name must match %s", prefix, serviceNameRe.String()))
		} else if seen[svc.Name] {
			errs = append(errs, fmt.Sprintf("%s.name %q is duplicated", prefix, svc.Name))
		}
		seen[svc.Name] = true
		if _, err := slo.ParseObjective(string(svc.Objective)); err != nil {
			errs = append(errs, fmt.Sprintf("%s.objective: %v", prefix, err))
		}
		if svc.UsedMinutes != nil && *svc.UsedMinutes < 0 {
			errs = append(errs, fmt.Sprintf("%s.usedMinutes: %v: must not be negative", prefix, slo.ErrInvalidDowntime))
		}
		if svc.Events != nil && *svc.Events < 1 {
			errs = append(errs, fmt.Sprintf("%s.events: %v: must be at least 1", prefix, slo.ErrInvalidDowntime))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Objectives parses every service objective in document order.
func (s Spec) Objectives() ([]slo.ServiceObjective, error) {
	if len(s.Services) == 0 {
		return nil, slo.ErrNoServicesConfigured
	}
	var out []slo.ServiceObjective
	for _, svc := range s.Services {
		obj, err := slo.ParseObjective(string(svc.Objective))
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", svc.Name, err)
		}
		out = append(out, slo.ServiceObjective{ID: svc.Name, Objective: obj})
	}
	return out, nil
}

// UsedMinutes collects the literal downtime given in the document.
func (s Spec) UsedMinutes() map[string]float64 {
	out := map[string]float64{}
	for _, svc := range s.Services {
		if svc.UsedMinutes != nil {
			out[svc.Name] = *svc.UsedMinutes
		}
	}
	return out
}

// EventCounts collects per-service simulated event counts.
func (s Spec) EventCounts() map[string]int {
	out := map[string]int{}
	for _, svc := range s.Services {
		if svc.Events != nil {
			out[svc.Name] = *svc.Events
		}
	}
	return out
}
