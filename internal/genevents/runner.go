package genevents

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/eventure/rankd/internal/adapters/repository"
	"github.com/eventure/rankd/pkg/logger"
)

// Run generates batches for the configured number of users and writes each
// one to {OutDir}/{userID}.csv. User IDs are drawn without repeats from
// [1, maxUserID].
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if config.NumEvents <= 0 {
		config.NumEvents = DefaultNumEvents
	}
	if config.NumUsers <= 0 {
		config.NumUsers = DefaultNumUsers
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	if config.NumUsers > maxUserID {
		return nil, fmt.Errorf("cannot generate %d unique user IDs from a pool of %d", config.NumUsers, maxUserID)
	}

	start := time.Now()
	stats := &Stats{RunID: uuid.New().String()}

	store := repository.NewCSVStore(
		repository.WithContentDir(config.OutDir),
		repository.WithLogger(logger.Get()),
	)

	used := make(map[int]bool, config.NumUsers)
	for i := 0; i < config.NumUsers; i++ {
		userID := pickUserID(used)
		used[userID] = true

		events, err := generateBatch(ctx, config, stats)
		if err != nil {
			return nil, fmt.Errorf("generate batch for user %d: %w", userID, err)
		}
		if err := store.WriteBatch(ctx, userID, events); err != nil {
			return nil, fmt.Errorf("write batch for user %d: %w", userID, err)
		}

		stats.FilesWritten++
		stats.UserIDs = append(stats.UserIDs, userID)
		if config.Verbose {
			logger.Get().Info(ctx, "wrote event batch",
				logger.Int("userID", userID),
				logger.Int("events", config.NumEvents),
			)
		}
	}

	sort.Ints(stats.UserIDs)
	stats.Duration = time.Since(start)

	logger.Get().Info(ctx, "generation complete",
		logger.String("runID", stats.RunID),
		logger.Int("files", stats.FilesWritten),
		logger.Int("events", stats.EventsGenerated),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}

// pickUserID draws an unused user ID from [1, maxUserID].
func pickUserID(used map[int]bool) int {
	for {
		id := 1 + randomIntn(maxUserID)
		if !used[id] {
			return id
		}
	}
}
