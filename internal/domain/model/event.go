// Package model contains domain models passed between layers.
package model

import (
	"math"
	"time"
)

// Event is an immutable snapshot of one candidate event within a ranking
// batch. Missing numeric fields are NaN; a missing or unparseable start is
// the zero time. Fields mirror the CSV batch columns.
type Event struct {
	ContentID    int       // unique within a batch
	Title        string    //
	Description  string    //
	Location     string    //
	Start        time.Time // zero when missing or unparseable
	Source       string    //
	Type         string    // free-text category; "" when missing
	CurrencyCode string    //
	Amount       float64   // price; NaN when missing
	URL          string    //
	Distance     float64   // kilometers from the user; NaN when missing
}

// HasStart reports whether the event carries a usable start timestamp.
func (e Event) HasStart() bool {
	return !e.Start.IsZero()
}

// HasDistance reports whether the distance field is present.
func (e Event) HasDistance() bool {
	return !math.IsNaN(e.Distance)
}

// HasAmount reports whether the price field is present.
func (e Event) HasAmount() bool {
	return !math.IsNaN(e.Amount)
}

// MissingCritical counts absent fields among {type, distance, start}.
func (e Event) MissingCritical() int {
	n := 0
	if e.Type == "" {
		n++
	}
	if !e.HasDistance() {
		n++
	}
	if !e.HasStart() {
		n++
	}
	return n
}

// MissingTotal counts absent fields across the whole row.
func (e Event) MissingTotal() int {
	n := e.MissingCritical()
	for _, s := range []string{e.Title, e.Description, e.Location, e.Source, e.CurrencyCode, e.URL} {
		if s == "" {
			n++
		}
	}
	if !e.HasAmount() {
		n++
	}
	return n
}

// HoursUntil returns the hours between now and the event start.
// Negative for past events.
func (e Event) HoursUntil(now time.Time) float64 {
	return e.Start.Sub(now).Hours()
}
