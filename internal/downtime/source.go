// Package downtime supplies the used downtime of a service for one window,
// either from literal operator input or from a generated sequence of outages.
package downtime

import (
	"math"
	"math/rand/v2"
)

// Event duration bounds for simulated outages, in minutes.
const (
	MinEventMinutes = 0.5
	MaxEventMinutes = 30.0

	DefaultEvents      = 5
	DefaultScaleFactor = 1.5
)

// Modes select which Source a run uses. A run never mixes modes.
const (
	ModeLiteral  = "literal"
	ModeSimulate = "simulate"
	ModeScaled   = "scaled"
)

// Request identifies the service being measured. Allowed is its error
// budget in minutes; only budget-relative sources read it.
type Request struct {
	ServiceID string
	Allowed   float64
}

// Record is the used downtime of one service. Events is empty for literal
// input.
type Record struct {
	Minutes float64   `json:"minutes"`
	Events  []float64 `json:"events,omitempty"`
}

type Source interface {
	Used(req Request) (Record, error)
}

// Rand is the randomness a simulated source draws from. Float64 returns a
// value in [0, 1).
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// NewRand returns the production generator. A zero seed draws from the
// runtime's unseeded source, so consecutive runs differ; any other seed
// gives a reproducible stream.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		return globalRand{}
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
