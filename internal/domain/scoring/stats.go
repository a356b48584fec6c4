package scoring

import (
	"github.com/eventure/rankd/internal/domain/model"
)

// meanAcc accumulates a running mean of present values.
type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(v float64) {
	m.sum += v
	m.n++
}

func (m *meanAcc) mean() (float64, bool) {
	if m.n == 0 {
		return 0, false
	}
	return m.sum / float64(m.n), true
}

// Stats holds per-category and global means for the fields that may need
// fallback substitution. Computed once per batch, read-only afterwards.
type Stats struct {
	distance       meanAcc
	amount         meanAcc
	distanceByType map[string]*meanAcc
	amountByType   map[string]*meanAcc
}

// ComputeStats scans a batch and accumulates distance and amount means,
// keyed by normalized category and globally.
func ComputeStats(events []model.Event) *Stats {
	s := &Stats{
		distanceByType: make(map[string]*meanAcc),
		amountByType:   make(map[string]*meanAcc),
	}
	for _, e := range events {
		category := model.NormalizeCategory(e.Type)
		if e.HasDistance() {
			s.distance.add(e.Distance)
			if category != "" {
				acc := s.distanceByType[category]
				if acc == nil {
					acc = &meanAcc{}
					s.distanceByType[category] = acc
				}
				acc.add(e.Distance)
			}
		}
		if e.HasAmount() {
			s.amount.add(e.Amount)
			if category != "" {
				acc := s.amountByType[category]
				if acc == nil {
					acc = &meanAcc{}
					s.amountByType[category] = acc
				}
				acc.add(e.Amount)
			}
		}
	}
	return s
}

// DistanceFallback returns the substitute distance for a missing value:
// the category mean when known, else the global mean.
func (s *Stats) DistanceFallback(category string) (float64, bool) {
	if acc, ok := s.distanceByType[category]; ok {
		if v, ok := acc.mean(); ok {
			return v, true
		}
	}
	return s.distance.mean()
}

// AmountFallback returns the substitute price for a missing value:
// the category mean when known, else the global mean.
func (s *Stats) AmountFallback(category string) (float64, bool) {
	if acc, ok := s.amountByType[category]; ok {
		if v, ok := acc.mean(); ok {
			return v, true
		}
	}
	return s.amount.mean()
}
