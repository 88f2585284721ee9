package slo

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinutesPerDay     = 24 * 60
	DefaultWindowDays = 30
)

// Window is the compliance window shared by every service in a run.
type Window struct {
	Days int `json:"days"`
}

func NewWindow(days int) (Window, error) {
	if days <= 0 {
		return Window{}, fmt.Errorf("%w: days must be > 0, got %d", ErrInvalidWindow, days)
	}
	return Window{Days: days}, nil
}

// ParseWindow reads a whole number of days. An empty value yields the default.
func ParseWindow(raw string) (Window, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Window{Days: DefaultWindowDays}, nil
	}
	days, err := strconv.Atoi(trimmed)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q is not a whole number of days", ErrInvalidWindow, raw)
	}
	return NewWindow(days)
}

func (w Window) TotalMinutes() float64 {
	return float64(w.Days) * MinutesPerDay
}

func (w Window) Validate() error {
	_, err := NewWindow(w.Days)
	return err
}
