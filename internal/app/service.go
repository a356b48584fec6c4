// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eventure/rankd/internal/adapters/backend"
	"github.com/eventure/rankd/internal/adapters/repository"
	"github.com/eventure/rankd/internal/domain/ranking"
	"github.com/eventure/rankd/internal/domain/scoring"
	"github.com/eventure/rankd/internal/domain/types"
	"github.com/eventure/rankd/pkg/logger"
	"github.com/eventure/rankd/pkg/metrics"
)

// Service wires the batch store, the user service client, and the ranking
// engine into the rank-for-user use case.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	users  backend.ProfileFetcher
	engine *ranking.Engine

	// Configuration
	scoringCfg        scoring.Config
	contentDir        string
	backendURL        string
	backendTimeout    time.Duration
	cacheSize         int
	writeScoreColumns bool

	// State
	started bool

	// Diagnostics
	rankingsServed  atomic.Int64
	lastComparisons atomic.Int64
	lastRemoved     atomic.Int64
	lastExcluded    atomic.Int64

	// Logging
	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithScoringConfig sets the engine's scoring configuration.
func WithScoringConfig(cfg scoring.Config) Option {
	return func(s *Service) {
		s.scoringCfg = cfg
	}
}

// WithContentDir sets the event batch directory.
func WithContentDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.contentDir = dir
		}
	}
}

// WithBackendURL sets the user service base URL.
func WithBackendURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.backendURL = url
		}
	}
}

// WithBackendTimeout bounds profile fetches.
func WithBackendTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.backendTimeout = d
		}
	}
}

// WithCacheSize bounds the engine's memoization caches.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithScoreColumns appends diagnostic score columns to saved output.
func WithScoreColumns(enabled bool) Option {
	return func(s *Service) {
		s.writeScoreColumns = enabled
	}
}

// WithStore replaces the batch store. Used by tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithProfileFetcher replaces the user service client. Used by tests.
func WithProfileFetcher(users backend.ProfileFetcher) Option {
	return func(s *Service) {
		if users != nil {
			s.users = users
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		scoringCfg:     scoring.DefaultConfig(),
		contentDir:     "content",
		backendURL:     "http://localhost:5152",
		backendTimeout: 10 * time.Second,
		cacheSize:      256,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.log == nil {
		s.log = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewCSVStore(
			repository.WithContentDir(s.contentDir),
			repository.WithScoreColumns(s.writeScoreColumns),
			repository.WithLogger(s.log),
		)
	}
	if s.users == nil {
		s.users = backend.New(
			backend.WithBaseURL(s.backendURL),
			backend.WithTimeout(s.backendTimeout),
			backend.WithLogger(s.log),
		)
	}

	engine, err := ranking.NewEngine(s.scoringCfg,
		ranking.WithLogger(s.log),
		ranking.WithCacheSize(s.cacheSize),
	)
	if err != nil {
		return fmt.Errorf("build ranking engine: %w", err)
	}
	s.engine = engine

	s.started = true
	s.log.Info(ctx, "ranking service started",
		logger.String("contentDir", s.contentDir),
		logger.String("backendURL", s.backendURL),
		logger.Int("cacheSize", s.cacheSize),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.log.Info(context.Background(), "ranking service stopped")
}

// RankForUser runs the complete ranking flow for one user: fetch the
// profile, load the event batch, rank, persist the ordered batch, and
// return a summary. Any failure leaves the stored batch untouched.
func (s *Service) RankForUser(ctx context.Context, userID int) (types.RankSummary, error) {
	start := time.Now()

	profile, err := s.users.FetchProfile(ctx, userID)
	if err != nil {
		metrics.RecordRankingError()
		return types.RankSummary{}, fmt.Errorf("fetch profile: %w", err)
	}

	events, skipped, err := s.store.LoadBatch(ctx, userID)
	if err != nil {
		metrics.RecordRankingError()
		return types.RankSummary{}, fmt.Errorf("load batch: %w", err)
	}

	result, err := s.engine.Rank(ctx, profile, events)
	if err != nil {
		metrics.RecordRankingError()
		return types.RankSummary{}, fmt.Errorf("rank events: %w", err)
	}

	if err := s.store.SaveRanked(ctx, userID, result.Ranked); err != nil {
		metrics.RecordRankingError()
		return types.RankSummary{}, fmt.Errorf("save ranked batch: %w", err)
	}

	// Rows dropped at load time for unusable ids count as removed too; the
	// summary must account for every input row.
	removed := result.Removed + skipped

	s.rankingsServed.Add(1)
	s.lastComparisons.Store(result.Comparisons)
	s.lastRemoved.Store(int64(removed))
	s.lastExcluded.Store(int64(result.Excluded))

	metrics.RecordRanking(float64(time.Since(start).Milliseconds()))
	metrics.RecordEventsRanked(len(result.Ranked))
	metrics.RecordEventsRemoved(removed)
	metrics.RecordEventsExcluded(result.Excluded)
	metrics.RecordFallbackSubstitutions(result.Substitutions)
	metrics.RecordSortComparisons(result.Comparisons)

	s.log.Info(ctx, "ranked events for user",
		logger.Int("userID", userID),
		logger.Int("ranked", len(result.Ranked)),
		logger.Int("removed", removed),
		logger.Int("excluded", result.Excluded),
		logger.Int64("comparisons", result.Comparisons),
	)

	return types.RankSummary{
		Success:         true,
		Message:         fmt.Sprintf("Successfully ranked events for user %d", userID),
		EventsProcessed: len(result.Ranked),
		EventsRemoved:   removed,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":         s.started,
		"rankingsServed":  s.rankingsServed.Load(),
		"lastComparisons": s.lastComparisons.Load(),
		"lastRemoved":     s.lastRemoved.Load(),
		"lastExcluded":    s.lastExcluded.Load(),
		"cacheSize":       s.cacheSize,
	}
}
