package downtime

import (
	"fmt"
	"math"

	"github.com/bayneri/budgetlab/internal/slo"
)

// Literal returns operator-supplied minutes. Services without an entry get
// the fallback value.
type Literal struct {
	minutes  map[string]float64
	fallback float64
}

func NewLiteral(minutes map[string]float64, fallback float64) (*Literal, error) {
	if err := checkMinutes("default", fallback); err != nil {
		return nil, err
	}
	copied := make(map[string]float64, len(minutes))
	for id, value := range minutes {
		if err := checkMinutes(id, value); err != nil {
			return nil, err
		}
		copied[id] = value
	}
	return &Literal{minutes: copied, fallback: fallback}, nil
}

func (l *Literal) Used(req Request) (Record, error) {
	value, ok := l.minutes[req.ServiceID]
	if !ok {
		value = l.fallback
	}
	return Record{Minutes: value}, nil
}

func checkMinutes(id string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s: %v is not a finite number of minutes", slo.ErrInvalidDowntime, id, value)
	}
	if value < 0 {
		return fmt.Errorf("%w: %s: used downtime cannot be negative (%v)", slo.ErrInvalidDowntime, id, value)
	}
	return nil
}
