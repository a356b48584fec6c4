package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RANKD_CONFIG is set
//  3. env (prefix RANKD_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("RANKD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RANKD_ADDR, RANKD_CONTENT_DIR, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("RANKD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rankd_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations that would silently bias results.
func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.ContentDir == "" {
		return fmt.Errorf("%w: content_dir must not be empty", ErrInvalidConfig)
	}
	if sum := cfg.Scoring.Weights.Sum(); sum != 100 {
		return fmt.Errorf("%w: dimension weights must sum to 100, got %v", ErrInvalidConfig, sum)
	}
	if len(cfg.Scoring.PriceTiers) == 0 {
		return fmt.Errorf("%w: price tier table must not be empty", ErrInvalidConfig)
	}
	if len(cfg.Scoring.DistanceTiers) == 0 {
		return fmt.Errorf("%w: distance tier table must not be empty", ErrInvalidConfig)
	}
	return nil
}
