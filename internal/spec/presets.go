package spec

import (
	"fmt"
	"sort"
)

const DefaultPreset = "retail"

type Preset struct {
	Name        string
	Description string
	WindowDays  int
	Services    []Service
	Notes       []string
}

var presets = map[string]Preset{
	"retail": {
		Name:        "retail",
		Description: "Retail storefront: frontend, payment API, backend and catalog",
		WindowDays:  30,
		Services: []Service{
			{Name: "frontend", Objective: "99.95"},
			{Name: "payment_api", Objective: "99.9"},
			{Name: "backend", Objective: "99.9"},
			{Name: "catalog", Objective: "99.8"},
		},
		Notes: []string{
			"Composite SLO = probability all services meet their targets.",
			"More services => lower effective end-to-end reliability.",
			"Composite error budget shows how tight reliability is for the full user journey.",
		},
	},
	"single": {
		Name:        "single",
		Description: "One service at 99.9% over 30 days",
		WindowDays:  30,
		Services: []Service{
			{Name: "service", Objective: "99.9"},
		},
		Notes: []string{
			"99.9% over 30 days allows 43.2 minutes of downtime.",
		},
	},
	"checkout": {
		Name:        "checkout",
		Description: "Checkout journey through edge, auth, payments and the primary database",
		WindowDays:  28,
		Services: []Service{
			{Name: "cdn", Objective: "99.99"},
			{Name: "frontend", Objective: "99.95"},
			{Name: "auth", Objective: "99.9"},
			{Name: "payments", Objective: "99.95"},
			{Name: "orders_db", Objective: "99.99"},
		},
		Notes: []string{
			"A journey through five services cannot be more reliable than its weakest hop.",
			"Tightening the weakest service moves the composite more than polishing the strongest.",
		},
	},
}

// PresetByName returns a copy of the named preset so callers may modify it.
func PresetByName(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("preset must be one of %v", PresetNames())
	}
	p.Services = append([]Service(nil), p.Services...)
	p.Notes = append([]string(nil), p.Notes...)
	return p, nil
}

func PresetNames() []string {
	var keys []string
	for k := range presets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Spec turns the preset into a document equivalent to a loaded file.
func (p Preset) Spec() Spec {
	return Spec{
		APIVersion: APIVersionV1,
		Kind:       KindServiceSet,
		Metadata: Metadata{
			Name:   p.Name,
			Labels: map[string]string{"preset": p.Name},
		},
		Window:   WindowSpec{Days: p.WindowDays},
		Services: append([]Service(nil), p.Services...),
	}
}
