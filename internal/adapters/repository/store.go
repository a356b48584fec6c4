// Package repository persists per-user event batches as CSV files.
package repository

import (
	"context"

	"github.com/eventure/rankd/internal/domain/model"
)

// Store provides access to per-user event batches.
type Store interface {
	// LoadBatch reads the raw event batch for a user. The second return
	// counts rows dropped for an unusable contentId.
	// Returns ErrBatchNotFound when no batch exists for the user,
	// ErrMissingColumn when a required column is absent, and
	// ErrMalformedBatch when a row cannot be parsed at all.
	LoadBatch(ctx context.Context, userID int) ([]model.Event, int, error)

	// SaveRanked writes the ranked batch back for a user, replacing any
	// previous output.
	SaveRanked(ctx context.Context, userID int, ranked []model.RankedEvent) error
}
