// Package types contains common types shared across application layers.
package types

// RankSummary is the user-visible outcome of one ranking request.
type RankSummary struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	EventsProcessed int    `json:"events_processed"`
	EventsRemoved   int    `json:"events_removed"`
}
