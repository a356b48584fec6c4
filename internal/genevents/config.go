// Package genevents generates synthetic event batches for load testing
// and local development. Each batch is written as {userID}.csv in the
// same column layout the ranking service consumes.
package genevents

import "time"

// Default generation settings.
const (
	DefaultNumEvents   = 1000
	DefaultNumUsers    = 1
	DefaultWorkers     = 4
	DefaultMissingRate = 0.05
)

// Config holds generation settings.
type Config struct {
	OutDir      string
	NumEvents   int
	NumUsers    int
	Workers     int
	MissingRate float64
	Verbose     bool
}

// Stats tracks generation results.
type Stats struct {
	RunID           string
	FilesWritten    int
	EventsGenerated int
	UserIDs         []int
	Duration        time.Duration
}
