package downtime

import (
	"fmt"

	"github.com/bayneri/budgetlab/internal/slo"
)

// Simulated generates independent outage events per service, each lasting
// between MinEventMinutes and MaxEventMinutes, and reports their sum.
// Results are not reproducible unless the Rand is.
type Simulated struct {
	events   map[string]int
	fallback int
	rng      Rand
}

func NewSimulated(events map[string]int, fallback int, rng Rand) (*Simulated, error) {
	if err := checkEvents("default", fallback); err != nil {
		return nil, err
	}
	copied := make(map[string]int, len(events))
	for id, n := range events {
		if err := checkEvents(id, n); err != nil {
			return nil, err
		}
		copied[id] = n
	}
	if rng == nil {
		rng = NewRand(0)
	}
	return &Simulated{events: copied, fallback: fallback, rng: rng}, nil
}

func (s *Simulated) Used(req Request) (Record, error) {
	n, ok := s.events[req.ServiceID]
	if !ok {
		n = s.fallback
	}
	return GenerateEvents(n, s.rng)
}

// GenerateEvents draws n outage durations rounded to two decimals.
func GenerateEvents(n int, rng Rand) (Record, error) {
	if err := checkEvents("events", n); err != nil {
		return Record{}, err
	}
	record := Record{Events: make([]float64, 0, n)}
	for i := 0; i < n; i++ {
		duration := round2(MinEventMinutes + rng.Float64()*(MaxEventMinutes-MinEventMinutes))
		record.Events = append(record.Events, duration)
		record.Minutes += duration
	}
	return record, nil
}

func checkEvents(id string, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %s: event count must be positive, got %d", slo.ErrInvalidDowntime, id, n)
	}
	return nil
}
