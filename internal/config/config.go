// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// Config contains engine configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WorkerCount sets the number of concurrent scoring workers used
	// for per-event fan-out.
	WorkerCount int `koanf:"worker_count"`

	// ProviderTimeoutMS bounds each upstream provider lookup; on
	// timeout the affected criterion degrades to the fallback score.
	ProviderTimeoutMS int `koanf:"provider_timeout_ms"`

	// TieTolerance treats composite scores this close as tied.
	TieTolerance float64 `koanf:"tie_tolerance"`

	// DefaultWeights maps criterion names to deployment-default
	// scoring weights, used when the preference store has none.
	DefaultWeights map[string]float64 `koanf:"default_weights"`

	// TieBreakCascade is the deployment-default cascade order.
	TieBreakCascade []string `koanf:"tie_break_cascade"`

	// VariantBoostFactor multiplies the emphasized criteria's weights
	// in the criterion-optimized request variants.
	VariantBoostFactor float64 `koanf:"variant_boost_factor"`

	// MaxRecommendations caps the returned list size; zero means no cap.
	MaxRecommendations int `koanf:"max_recommendations"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		WorkerCount:       runtime.NumCPU() * 2,
		ProviderTimeoutMS: 500,
		TieTolerance:      1e-9,
		DefaultWeights: map[string]float64{
			string(types.CriterionCultural):      1.5,
			string(types.CriterionGeographic):    1.2,
			string(types.CriterionRegional):      0.8,
			string(types.CriterionProximity):     0.8,
			string(types.CriterionAccessibility): 0.8,
			string(types.CriterionHistory):       1.0,
			string(types.CriterionTime):          1.0,
			string(types.CriterionLanguage):      0.9,
			string(types.CriterionFamily):        0.9,
			string(types.CriterionCategory):      0.8,
			string(types.CriterionInvolvement):   0.7,
		},
		TieBreakCascade: []string{
			string(types.TieBreakCulturalRelevance),
			string(types.TieBreakCapacity),
			string(types.TieBreakTimeProximity),
		},
		VariantBoostFactor: 3.0,
		MaxRecommendations: 0,
	}
}

// Weights converts the configured default weights into the domain type.
func (c *Config) Weights() types.Weights {
	w := make(types.Weights, len(c.DefaultWeights))
	for name, v := range c.DefaultWeights {
		w[types.Criterion(name)] = v
	}
	return w
}

// Cascade converts the configured cascade into the domain type.
func (c *Config) Cascade() []types.TieBreakRule {
	out := make([]types.TieBreakRule, 0, len(c.TieBreakCascade))
	for _, name := range c.TieBreakCascade {
		out = append(out, types.TieBreakRule(name))
	}
	return out
}
