package ranking

import (
	"context"
	"time"

	"github.com/eventure/rankd/internal/domain/model"
	"github.com/eventure/rankd/internal/domain/scoring"
	"github.com/eventure/rankd/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock overrides the ranking-time source. Used by tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithCacheSize bounds the scorer's memoization caches.
func WithCacheSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.cacheSize = size
		}
	}
}

// WithBreakdowns enables per-event score breakdowns on the result.
func WithBreakdowns(enabled bool) Option {
	return func(e *Engine) {
		e.breakdowns = enabled
	}
}

// Engine orchestrates one ranking call: filter, score every event, apply
// penalties, sort, attach rank positions. Deterministic and side-effect
// free aside from diagnostic logging; safe for concurrent calls.
type Engine struct {
	scorer     *scoring.Scorer
	log        logger.Logger
	clock      func() time.Time
	cacheSize  int
	breakdowns bool
}

// NewEngine validates the scoring configuration and builds an Engine.
func NewEngine(cfg scoring.Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		clock:     time.Now,
		cacheSize: 128,
	}
	for _, opt := range opts {
		opt(e)
	}

	scorerOpts := []scoring.Option{scoring.WithCacheSize(e.cacheSize)}
	if e.log != nil {
		scorerOpts = append(scorerOpts, scoring.WithLogger(e.log))
	}
	scorer, err := scoring.New(cfg, scorerOpts...)
	if err != nil {
		return nil, err
	}
	e.scorer = scorer
	return e, nil
}

// Rank filters the batch, scores every surviving event for the profile,
// and returns events in descending final-score order with 1-based ranks.
// Fatal errors (unknown tiers) abort the whole request; the result is
// never partial.
func (e *Engine) Rank(ctx context.Context, profile model.UserProfile, events []model.Event) (model.Result, error) {
	now := e.clock()

	kept, removed := Filter(events, now)
	stats := scoring.ComputeStats(kept)

	var result model.Result
	result.Removed = removed
	if e.breakdowns {
		result.Breakdowns = make(map[int]model.ScoreBreakdown, len(kept))
	}

	byID := make(map[int]model.Event, len(kept))
	pairs := make([]ScoredEvent, 0, len(kept))
	for _, ev := range kept {
		b, err := e.scorer.Score(ctx, profile, ev, now, stats)
		if err != nil {
			return model.Result{}, err
		}
		result.Substitutions += len(b.Substituted)
		if e.breakdowns {
			result.Breakdowns[ev.ContentID] = b
		}

		score := b.Final
		if b.HoursUntil < 0 {
			// Defensive: the filter already drops past events, but a
			// past-due entry must never outrank anything.
			score = SentinelScore
		}
		byID[ev.ContentID] = ev
		pairs = append(pairs, ScoredEvent{ContentID: ev.ContentID, Score: score})
	}

	sorted, excluded, comparisons := Sort(pairs)
	result.Excluded = len(excluded)
	result.Comparisons = comparisons

	// The sorter orders ascending; ranks are attached best-first.
	result.Ranked = make([]model.RankedEvent, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		result.Ranked = append(result.Ranked, model.RankedEvent{
			Rank:  len(sorted) - i,
			Event: byID[p.ContentID],
			Score: p.Score,
		})
	}

	if e.log != nil {
		e.log.Debug(ctx, "ranking complete",
			logger.Int("ranked", len(result.Ranked)),
			logger.Int("removed", result.Removed),
			logger.Int("excluded", result.Excluded),
			logger.Int64("comparisons", result.Comparisons),
		)
	}
	return result, nil
}
