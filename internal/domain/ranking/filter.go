// Package ranking filters, scores, and orders event batches for one user.
package ranking

import (
	"time"

	"github.com/eventure/rankd/internal/domain/model"
)

// Filter thresholds. Blunt but deterministic triage so that unusable rows
// are never scored.
const (
	maxMissingCritical = 2
	maxMissingTotal    = 4
)

// Filter drops events with no usable start timestamp, a past start, or too
// many missing fields. Returns the surviving events and the removed count.
// Unparseable timestamps arrive as the zero time and are excluded here.
func Filter(events []model.Event, now time.Time) ([]model.Event, int) {
	kept := make([]model.Event, 0, len(events))
	for _, e := range events {
		if !e.HasStart() || e.Start.Before(now) {
			continue
		}
		if e.MissingCritical() > maxMissingCritical {
			continue
		}
		if e.MissingTotal() > maxMissingTotal {
			continue
		}
		kept = append(kept, e)
	}
	return kept, len(events) - len(kept)
}
