package slo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const displayPrecision = 1e6

// Objective is an SLO held both as a percentage and as a fraction.
type Objective struct {
	Percent  float64 `json:"percent"`
	Fraction float64 `json:"fraction"`
}

// ServiceObjective binds an objective to a service identifier.
type ServiceObjective struct {
	ID        string    `json:"id"`
	Objective Objective `json:"objective"`
}

// ParseObjective accepts "99.9", "99.9%", "0.999" or ".999".
//
// A trailing "%" is dropped before the number is read. Values in (0, 1] are
// then fractions and values in (1, 100] are percentages, so "1" and "1%" both
// mean the fraction 1.0 and are rejected like "100". The range check runs on
// the rounded fraction.
func ParseObjective(raw string) (Objective, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	if trimmed == "" {
		return Objective{}, fmt.Errorf("%w: empty value", ErrInvalidObjective)
	}
	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return Objective{}, fmt.Errorf("%w: %q is not a number (e.g. 99.9 or 0.999)", ErrInvalidObjective, raw)
	}

	var obj Objective
	switch {
	case num > 0 && num <= 1:
		obj = Objective{Percent: round6(num * 100), Fraction: round6(num)}
	case num > 1 && num <= 100:
		obj = Objective{Percent: round6(num), Fraction: round6(num / 100)}
	default:
		return Objective{}, fmt.Errorf("%w: %q must be a fraction in (0, 1) or a percent in (1, 100)", ErrInvalidObjective, raw)
	}
	if err := obj.Validate(); err != nil {
		return Objective{}, fmt.Errorf("%w (from %q)", err, raw)
	}
	return obj, nil
}

// MustObjective parses a literal known to be valid. It panics otherwise.
func MustObjective(raw string) Objective {
	obj, err := ParseObjective(raw)
	if err != nil {
		panic(err)
	}
	return obj
}

func (o Objective) Validate() error {
	if !(o.Fraction > 0 && o.Fraction < 1) {
		return fmt.Errorf("%w: fraction %v must be strictly between 0 and 1", ErrInvalidObjective, o.Fraction)
	}
	return nil
}

func (o Objective) String() string {
	return strconv.FormatFloat(o.Percent, 'f', -1, 64) + "%"
}

func round6(value float64) float64 {
	return math.Round(value*displayPrecision) / displayPrecision
}
