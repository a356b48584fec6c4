// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Every scoring weight, tier table, and threshold lives in configuration,
//   never as a scattered constant near its use site.
// - New() builds production defaults; Load() layers file and env on top.
// - External errors must be wrapped via this package's error kinds.
package config

import (
	"github.com/eventure/rankd/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8095".
	Addr string `koanf:"addr"`

	// ContentDir holds per-user event batches as {userID}.csv.
	ContentDir string `koanf:"content_dir"`

	// BackendURL is the base URL of the user-profile backend.
	BackendURL string `koanf:"backend_url"`

	// BackendTimeoutSeconds bounds profile fetches.
	BackendTimeoutSeconds int `koanf:"backend_timeout_seconds"`

	// CacheSize bounds the engine's memoization caches.
	CacheSize int `koanf:"cache_size"`

	// WriteScoreColumns appends diagnostic score columns to saved output.
	WriteScoreColumns bool `koanf:"write_score_columns"`

	// Scoring holds the complete engine configuration surface.
	Scoring scoring.Config `koanf:"scoring"`
}

// New creates a Config with production defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":8095",
		ContentDir:            "content",
		BackendURL:            "http://localhost:5152",
		BackendTimeoutSeconds: 10,
		CacheSize:             256,
		WriteScoreColumns:     false,
		Scoring:               scoring.DefaultConfig(),
	}
}
