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

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if LANKAREC_CONFIG is set
//  3. env (prefix LANKAREC_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("LANKAREC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: LANKAREC_WORKER_COUNT, LANKAREC_TIE_TOLERANCE, ...
	// Map env keys like LANKAREC_WORKER_COUNT -> worker_count (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("LANKAREC_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "lankarec_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects structurally invalid configuration. Malformed weights
// or an empty tie-break cascade are caller bugs, not data-quality
// issues, so they surface as errors rather than degrade silently.
func (c *Config) Validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if c.ProviderTimeoutMS <= 0 {
		return fmt.Errorf("%w: provider_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.TieTolerance < 0 {
		return fmt.Errorf("%w: tie_tolerance must not be negative", ErrInvalidConfig)
	}
	if len(c.DefaultWeights) == 0 {
		return fmt.Errorf("%w: default_weights must not be empty", ErrInvalidConfig)
	}
	anyPositive := false
	for name, v := range c.DefaultWeights {
		if v < 0 {
			return fmt.Errorf("%w: weight %q is negative", ErrInvalidConfig, name)
		}
		if v > 0 {
			anyPositive = true
		}
	}
	if !anyPositive {
		return fmt.Errorf("%w: all default weights are zero", ErrInvalidConfig)
	}
	if len(c.TieBreakCascade) == 0 {
		return fmt.Errorf("%w: tie_break_cascade must not be empty", ErrInvalidConfig)
	}
	for _, name := range c.TieBreakCascade {
		if !types.KnownTieBreakRule(types.TieBreakRule(name)) {
			return fmt.Errorf("%w: unknown tie-break rule %q", ErrInvalidConfig, name)
		}
	}
	if c.VariantBoostFactor <= 0 {
		return fmt.Errorf("%w: variant_boost_factor must be positive", ErrInvalidConfig)
	}
	return nil
}
