package scoring

import (
	"math"

	"github.com/eventure/rankd/internal/domain/model"
)

const hoursPerDay = 24

// penaltyMultiplier composes the multiplicative corrections for severe
// mismatches. Applied after aggregation so it can only reduce the final
// score, never distort the weight semantics of the primary score.
// NaN fields never trigger a penalty (comparisons are false).
func (s *Scorer) penaltyMultiplier(p model.UserProfile, category string, e model.Event, hoursUntil, maxDistance float64) float64 {
	c := s.cfg.Penalties
	multiplier := 1.0

	if e.Amount > 0 {
		if r, err := s.PriceRangeFor(p.PriceTier); err == nil && !r.Unbounded() {
			if e.Amount > r.Max*c.PriceToleranceMultiplier {
				multiplier *= c.PriceSeverePenalty
			}
		}
	}

	if e.Distance > maxDistance*c.DistanceToleranceMultiplier {
		multiplier *= c.DistanceSeverePenalty
	}

	if category != "" && p.Dislikes(category) {
		multiplier *= c.DislikedPenalty
	}

	if hoursUntil > c.FarFutureThresholdHours {
		daysBeyond := (hoursUntil - c.FarFutureThresholdHours) / hoursPerDay
		penalty := math.Max(c.FarFutureMinPenalty, c.FarFutureBasePenalty-daysBeyond*c.FarFutureDailyDecay)
		multiplier *= penalty
	}

	return multiplier
}
