package downtime

import (
	"fmt"
	"math"

	"github.com/bayneri/budgetlab/internal/slo"
)

// Scaled draws used downtime uniformly from [0, factor*allowed]. With a
// factor above 1 some services overrun their budget.
type Scaled struct {
	factor float64
	rng    Rand
}

func NewScaled(factor float64, rng Rand) (*Scaled, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return nil, fmt.Errorf("%w: scale factor must be positive, got %v", slo.ErrInvalidDowntime, factor)
	}
	if rng == nil {
		rng = NewRand(0)
	}
	return &Scaled{factor: factor, rng: rng}, nil
}

func (s *Scaled) Used(req Request) (Record, error) {
	if req.Allowed < 0 {
		return Record{}, fmt.Errorf("%w: %s: negative budget %v", slo.ErrInvalidDowntime, req.ServiceID, req.Allowed)
	}
	return Record{Minutes: round2(s.rng.Float64() * req.Allowed * s.factor)}, nil
}
