// Package composite computes the end-to-end reliability of a user journey
// that needs every configured service to succeed.
//
// Services are treated as failing independently, so the composite fraction
// is the product of the individual fractions. Correlated failures (shared
// infrastructure, cascading outages) are not modelled; the result is a
// teaching approximation, not a forecast.
package composite

import (
	"fmt"

	"github.com/bayneri/budgetlab/internal/slo"
)

type Result struct {
	Fraction       float64 `json:"fraction"`
	Percent        float64 `json:"percent"`
	AllowedMinutes float64 `json:"allowedMinutes"`
	Services       int     `json:"services"`
	Weakest        string  `json:"weakest"`
}

func Compute(objectives []slo.ServiceObjective, window slo.Window) (Result, error) {
	if len(objectives) == 0 {
		return Result{}, slo.ErrNoServicesConfigured
	}
	if err := window.Validate(); err != nil {
		return Result{}, err
	}

	fraction := 1.0
	weakest := objectives[0]
	for _, obj := range objectives {
		if err := obj.Objective.Validate(); err != nil {
			return Result{}, fmt.Errorf("%s: %w", obj.ID, err)
		}
		fraction *= obj.Objective.Fraction
		if obj.Objective.Fraction < weakest.Objective.Fraction {
			weakest = obj
		}
	}

	return Result{
		Fraction:       fraction,
		Percent:        fraction * 100,
		AllowedMinutes: slo.ErrorBudget(fraction, window.Days),
		Services:       len(objectives),
		Weakest:        weakest.ID,
	}, nil
}
