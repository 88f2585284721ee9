package slo

import "errors"

// Input validation failures. Callers wrap these with context and match
// them with errors.Is.
var (
	ErrInvalidObjective     = errors.New("invalid objective")
	ErrInvalidWindow        = errors.New("invalid window")
	ErrInvalidDowntime      = errors.New("invalid downtime")
	ErrNoServicesConfigured = errors.New("no services configured")
)
