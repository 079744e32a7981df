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
//  2. file (YAML) if PORRA_CONFIG is set
//  3. env (prefix PORRA_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PORRA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: PORRA_ADDR, PORRA_CACHE_PATH, ...
	// Keys keep their underscores to match the koanf struct tags.
	envProvider := env.Provider("PORRA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "porra_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.StatsTopLimit <= 0 {
		return nil, fmt.Errorf("%w: stats_top_limit must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
