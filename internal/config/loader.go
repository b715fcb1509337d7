package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment names read by Load.
const (
	EnvPrefix = "MINDLAB_"
	EnvFile   = "MINDLAB_CONFIG"
)

var backends = map[string]bool{"memory": true, "csv": true, "sqlite": true}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MINDLAB_CONFIG is set
//  3. env (prefix MINDLAB_)
func Load(_ context.Context) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// MINDLAB_CACHE_TTL_MS -> cache_ttl_ms; underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field combinations. Failures wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !backends[c.StoreBackend]:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, c.StoreBackend)
	case c.StoreBackend != "memory" && strings.TrimSpace(c.StorePath) == "":
		return fmt.Errorf("%w: store_path is required for the %s backend", ErrInvalidConfig, c.StoreBackend)
	case c.NotesLimit <= 0:
		return fmt.Errorf("%w: notes_limit must be positive", ErrInvalidConfig)
	case c.DedupeTTLMS <= 0:
		return fmt.Errorf("%w: dedupe_ttl_ms must be positive", ErrInvalidConfig)
	case strings.TrimSpace(c.PageSize) == "":
		return fmt.Errorf("%w: page_size must not be empty", ErrInvalidConfig)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("%w: timezone: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
