package analyze

import (
	"time"

	"github.com/bayneri/budgetlab/internal/burn"
	"github.com/bayneri/budgetlab/internal/composite"
)

const SchemaVersion = "2.0"

type Result struct {
	SchemaVersion string           `json:"schemaVersion"`
	RunID         string           `json:"runId"`
	Name          string           `json:"name"`
	GeneratedAt   time.Time        `json:"generatedAt"`
	Mode          string           `json:"mode"`
	Window        Window           `json:"window"`
	Status        burn.Tier        `json:"status"`
	Services      []ServiceResult  `json:"services"`
	Composite     composite.Result `json:"composite"`
}

type Window struct {
	Days         int     `json:"days"`
	TotalMinutes float64 `json:"totalMinutes"`
}

type ServiceResult struct {
	ID                string    `json:"id"`
	ObjectivePercent  float64   `json:"objectivePercent"`
	ObjectiveFraction float64   `json:"objectiveFraction"`
	AllowedMinutes    float64   `json:"allowedMinutes"`
	UsedMinutes       float64   `json:"usedMinutes"`
	RemainingMinutes  float64   `json:"remainingMinutes"`
	Overrun           bool      `json:"overrun"`
	BurnPercent       *float64  `json:"burnPercent"`
	PerDayAllowance   float64   `json:"perDayAllowanceMinutes"`
	Tier              burn.Tier `json:"tier"`
	Guidance          string    `json:"guidance"`
	Events            []float64 `json:"events,omitempty"`
}

// BurnDefined reports whether the service has a finite burn percentage.
func (s ServiceResult) BurnDefined() bool {
	return s.BurnPercent != nil
}
