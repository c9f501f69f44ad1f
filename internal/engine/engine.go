// Package engine orchestrates the recommendation pipeline: candidate
// dedupe, batched provider lookups, concurrent per-event scoring,
// normalization, weighted aggregation, conflict resolution and
// tie-breaking.
//
// The engine holds no mutable shared state and performs no writes; every
// operation is an independent, idempotent computation over its inputs
// plus three read-only providers.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/config"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/calendar"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/geo"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/prefs"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/pkg/logger"
)

// Engine composes the scoring pipeline behind the public operations.
type Engine struct {
	calendar calendar.Calendar
	prefs    prefs.Store
	geo      geo.Service

	cfg *config.Config
	log logger.Logger

	// now is injectable so time-proximity tie-breaks and recency
	// weighting are deterministic under test.
	now func() time.Time

	workerCount     int
	providerTimeout time.Duration
	boostFactor     float64
	tieTolerance    float64
	maxResults      int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCalendar sets the cultural calendar provider.
func WithCalendar(c calendar.Calendar) Option {
	return func(e *Engine) { e.calendar = c }
}

// WithPreferences sets the user preference store.
func WithPreferences(s prefs.Store) Option {
	return func(e *Engine) { e.prefs = s }
}

// WithProximity sets the geographic proximity service.
func WithProximity(s geo.Service) Option {
	return func(e *Engine) { e.geo = s }
}

// WithConfig sets the engine configuration.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock fixes the engine's notion of "now".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithWorkerCount overrides the configured scoring fan-out width.
func WithWorkerCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workerCount = n
		}
	}
}

// New constructs an Engine. It rejects missing providers and invalid
// configuration up front so operations never fail on wiring bugs.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg: config.New(context.Background()),
		log: logger.Get().Named("engine"),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	switch {
	case e.calendar == nil:
		return nil, fmt.Errorf("%w: cultural calendar", ErrMissingProvider)
	case e.prefs == nil:
		return nil, fmt.Errorf("%w: preference store", ErrMissingProvider)
	case e.geo == nil:
		return nil, fmt.Errorf("%w: proximity service", ErrMissingProvider)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	if e.workerCount <= 0 {
		e.workerCount = e.cfg.WorkerCount
	}
	e.providerTimeout = time.Duration(e.cfg.ProviderTimeoutMS) * time.Millisecond
	e.boostFactor = e.cfg.VariantBoostFactor
	e.tieTolerance = e.cfg.TieTolerance
	e.maxResults = e.cfg.MaxRecommendations

	return e, nil
}
