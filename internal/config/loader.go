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

// Load builds a Config by layering defaults, an optional YAML file and
// environment variables.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if SKILLFIT_CONFIG is set
//  3. env (prefix SKILLFIT_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("SKILLFIT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// SKILLFIT_TERM_THRESHOLD -> term_threshold, etc. Underscores are
	// preserved to match the koanf tags on the struct.
	envProvider := env.Provider("SKILLFIT_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "skillfit_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CatalogPath == "":
		return fmt.Errorf("%w: catalog_path must not be empty", ErrInvalidConfig)
	case c.RolesPath == "":
		return fmt.Errorf("%w: roles_path must not be empty", ErrInvalidConfig)
	case c.TermThreshold <= 0 || c.TermThreshold >= 1:
		return fmt.Errorf("%w: term_threshold must be in (0,1)", ErrInvalidConfig)
	case c.SemanticThreshold <= 0 || c.SemanticThreshold >= 1:
		return fmt.Errorf("%w: semantic_threshold must be in (0,1)", ErrInvalidConfig)
	case c.InferenceWorkers < 1:
		return fmt.Errorf("%w: inference_workers must be positive", ErrInvalidConfig)
	case c.InferenceQueueSize < 1:
		return fmt.Errorf("%w: inference_queue_size must be positive", ErrInvalidConfig)
	case c.MaxUploadBytes < 1:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	}
	return nil
}
