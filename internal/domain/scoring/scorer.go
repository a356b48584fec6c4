package scoring

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/eventure/rankd/internal/domain/memo"
	"github.com/eventure/rankd/internal/domain/model"
	"github.com/eventure/rankd/pkg/logger"
)

// Scale bounds for dimension scores.
const (
	maxDimensionScore = 100
	neutralTypeScore  = 50
)

// Distance curve breakpoints, expressed as fractions of the resolved max.
const (
	distancePerfectPortion = 0.3
	distanceNearMaxScore   = 98
	distanceNearMaxDrop    = 8
	distanceBufferTop      = 90
	distanceBufferDrop     = 50
	distanceBufferEndMult  = 2.0
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithLogger sets the logger used for edge-case audit records.
func WithLogger(log logger.Logger) Option {
	return func(s *Scorer) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCacheSize bounds the memoization caches.
func WithCacheSize(size int) Option {
	return func(s *Scorer) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// Scorer computes per-dimension scores and full per-event breakdowns for
// one configuration. Safe for concurrent use; the caches are bounded and
// instance-owned.
type Scorer struct {
	cfg       Config
	log       logger.Logger
	cacheSize int

	normalized  *memo.Cache[string]  // raw category -> normalized form
	typeWeights *memo.Cache[float64] // profile fingerprint + category -> type score
}

// New builds a Scorer after validating the configuration.
func New(cfg Config, opts ...Option) (*Scorer, error) {
	if cfg.Weights.Sum() != 100 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidWeights, cfg.Weights.Sum())
	}
	s := &Scorer{
		cfg:       cfg,
		cacheSize: 128,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.normalized = memo.New(memo.WithMaxSize[string](s.cacheSize))
	s.typeWeights = memo.New(memo.WithMaxSize[float64](s.cacheSize * 2))
	return s, nil
}

// Config returns the scoring configuration in use.
func (s *Scorer) Config() Config {
	return s.cfg
}

// NormalizeType memoizes category normalization.
func (s *Scorer) NormalizeType(raw string) string {
	if raw == "" {
		return ""
	}
	return s.normalized.GetOrCompute(raw, func() string {
		return model.NormalizeCategory(raw)
	})
}

// TypeScore scores a normalized category against the profile's preference
// sets: preferred is maximal, disliked is minimal, unknown is neutral.
// A missing category is minimal, deliberately worse than "don't care".
func (s *Scorer) TypeScore(p model.UserProfile, category string) float64 {
	if category == "" {
		return 0
	}
	key := p.Fingerprint() + "\x00" + category
	return s.typeWeights.GetOrCompute(key, func() float64 {
		switch {
		case p.Prefers(category):
			return maxDimensionScore
		case p.Dislikes(category):
			return 0
		default:
			return neutralTypeScore
		}
	})
}

// ResolveMaxDistance returns the numeric distance cap for a profile: the
// raw override when set, otherwise the configured tier value. An empty
// tier maps to "Any Distance"; an unknown tier is a fatal error.
func (s *Scorer) ResolveMaxDistance(p model.UserProfile) (float64, error) {
	if p.MaxDistanceKm > 0 {
		return p.MaxDistanceKm, nil
	}
	tier := p.DistanceTier
	if tier == "" {
		tier = "Any Distance"
	}
	maxDistance, ok := s.cfg.DistanceTiers[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDistanceTier, tier)
	}
	return maxDistance, nil
}

// PriceRangeFor returns the [min,max] band for a price tier. An empty tier
// maps to "irrelevant"; an unknown tier is a fatal error.
func (s *Scorer) PriceRangeFor(tier string) (PriceRange, error) {
	if tier == "" {
		tier = "irrelevant"
	}
	r, ok := s.cfg.PriceTiers[tier]
	if !ok {
		return PriceRange{}, fmt.Errorf("%w: %q", ErrUnknownPriceTier, tier)
	}
	return r, nil
}

// DistanceScore applies the piecewise distance curve: perfect inside 30%
// of the cap, a shallow decay up to the cap, a steep decay through the
// 200% buffer zone, zero beyond.
func (s *Scorer) DistanceScore(distance, maxDistance float64) float64 {
	switch {
	case distance <= maxDistance*distancePerfectPortion:
		return maxDimensionScore
	case distance <= maxDistance:
		portion := (distance - maxDistance*distancePerfectPortion) / (maxDistance * (1 - distancePerfectPortion))
		return distanceNearMaxScore - distanceNearMaxDrop*portion
	case distance <= maxDistance*distanceBufferEndMult:
		portion := (distance - maxDistance) / maxDistance
		return distanceBufferTop - distanceBufferDrop*portion
	default:
		return 0
	}
}

// TimeScore applies the multi-peak time curve: a linear immediate ramp, a
// Gaussian sweet spot, and a linear long-term decay. Past events score 0.
func (s *Scorer) TimeScore(hours float64) float64 {
	t := s.cfg.Time
	if hours < 0 {
		return 0
	}
	if hours <= t.ImmediatePeakHours {
		return 80 + 20*(hours/t.ImmediatePeakHours)
	}
	deviation := math.Abs(hours - t.SweetSpotHours)
	score := maxDimensionScore * math.Exp(-math.Pow(deviation/t.ToleranceHours, 2))
	if hours > t.LongDecayStartHours {
		score -= t.LongDecayFactor * (hours - t.LongDecayStartHours)
	}
	return math.Max(0, math.Min(maxDimensionScore, score))
}

// PriceScore applies the tiered price policy for the given tier.
func (s *Scorer) PriceScore(amount float64, tier string) (float64, error) {
	p := s.cfg.Price
	r, err := s.PriceRangeFor(tier)
	if err != nil {
		return 0, err
	}
	switch {
	case amount == 0:
		return p.FreeEventScore, nil
	case r.Unbounded():
		// No upper bound means no real preference; stay neutral.
		return p.IrrelevantScore, nil
	case amount >= r.Min && amount <= r.Max:
		return p.InRangeScore, nil
	case amount < r.Min:
		percentBelow := (r.Min - amount) / r.Min
		if percentBelow <= p.TolerancePct {
			return p.UnderBudgetCloseScore, nil
		}
		return p.UnderBudgetFarScore, nil
	default:
		percentAbove := (amount - r.Max) / r.Max
		if percentAbove <= p.TolerancePct {
			return p.OverBudgetCloseScore, nil
		}
		return p.OverBudgetFarScore, nil
	}
}

// Score assembles the full breakdown for one event: dimension scores with
// fallback substitution for missing fields, weighted aggregation, and the
// penalty multiplier. Substituted field names are recorded on the
// breakdown and logged as auditable edge cases.
func (s *Scorer) Score(ctx context.Context, p model.UserProfile, e model.Event, now time.Time, stats *Stats) (model.ScoreBreakdown, error) {
	var b model.ScoreBreakdown
	w := s.cfg.Weights
	category := s.NormalizeType(e.Type)

	b.TypeScore = s.TypeScore(p, category)

	maxDistance, err := s.ResolveMaxDistance(p)
	if err != nil {
		return model.ScoreBreakdown{}, err
	}
	distance := e.Distance
	if !e.HasDistance() {
		if fallback, ok := stats.DistanceFallback(category); ok {
			distance = fallback
			b.Substituted = append(b.Substituted, "distance")
			s.logEdgeCase(ctx, e.ContentID, "distance", fallback)
		}
	}
	if math.IsNaN(distance) {
		b.DistanceScore = 0
	} else {
		b.DistanceScore = s.DistanceScore(distance, maxDistance)
	}

	b.HoursUntil = e.HoursUntil(now)
	b.TimeScore = s.TimeScore(b.HoursUntil)

	amount := e.Amount
	if !e.HasAmount() {
		if fallback, ok := stats.AmountFallback(category); ok {
			amount = fallback
			b.Substituted = append(b.Substituted, "amount")
			s.logEdgeCase(ctx, e.ContentID, "amount", fallback)
		}
	}
	if math.IsNaN(amount) {
		b.PriceScore = 0
	} else {
		b.PriceScore, err = s.PriceScore(amount, p.PriceTier)
		if err != nil {
			return model.ScoreBreakdown{}, err
		}
	}

	b.WeightedType = b.TypeScore / maxDimensionScore * w.Type
	b.WeightedDistance = b.DistanceScore / maxDimensionScore * w.Distance
	b.WeightedTime = b.TimeScore / maxDimensionScore * w.Time
	b.WeightedPrice = b.PriceScore / maxDimensionScore * w.Price

	b.Raw = round2(b.WeightedType + b.WeightedDistance + b.WeightedTime + b.WeightedPrice)
	b.Penalty = s.penaltyMultiplier(p, category, e, b.HoursUntil, maxDistance)
	b.Final = b.Raw * b.Penalty
	return b, nil
}

func (s *Scorer) logEdgeCase(ctx context.Context, contentID int, field string, fallback float64) {
	if s.log == nil {
		return
	}
	s.log.Info(ctx, "missing field, fallback substituted",
		logger.Int("contentId", contentID),
		logger.String("field", field),
		logger.Float64("fallback", fallback),
	)
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
