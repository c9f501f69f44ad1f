// Package prefs defines the user preference store contract, an in-memory
// reference implementation, and the pure compatibility helpers the score
// calculators build on.
package prefs

import (
	"context"
	"fmt"
	"sync"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// Store resolves per-user profiles and request-scoped scoring
// configuration. Implementations must treat all returned values as
// snapshots: the engine never writes back.
type Store interface {
	GetProfile(ctx context.Context, userID string) (model.UserProfile, error)

	// GetScoringWeights returns the user's explicit weights, or the
	// deployment defaults when the user has none.
	GetScoringWeights(ctx context.Context, userID string) (types.Weights, error)

	// GetPersonalizedWeights returns learned weights together with a
	// personalization confidence in [0,1].
	GetPersonalizedWeights(ctx context.Context, userID string) (types.Weights, float64, error)

	GetTieBreakRules(ctx context.Context, userID string) ([]types.TieBreakRule, error)
	GetConflictRules(ctx context.Context, userID string) (types.ConflictRules, error)
}

// DefaultWeights is the deployment-wide fallback weighting: culture and
// geography dominate, the remaining criteria share the rest.
func DefaultWeights() types.Weights {
	return types.Weights{
		types.CriterionCultural:      1.5,
		types.CriterionGeographic:    1.2,
		types.CriterionRegional:      0.8,
		types.CriterionProximity:     0.8,
		types.CriterionAccessibility: 0.8,
		types.CriterionHistory:       1.0,
		types.CriterionTime:          1.0,
		types.CriterionLanguage:      0.9,
		types.CriterionFamily:        0.9,
		types.CriterionCategory:      0.8,
		types.CriterionInvolvement:   0.7,
	}
}

// DefaultTieBreakRules is the deployment-wide cascade order.
func DefaultTieBreakRules() []types.TieBreakRule {
	return []types.TieBreakRule{
		types.TieBreakCulturalRelevance,
		types.TieBreakCapacity,
		types.TieBreakTimeProximity,
		types.TieBreakAlphabetical,
	}
}

// userRecord bundles everything the store knows about one user.
type userRecord struct {
	profile       model.UserProfile
	weights       types.Weights
	personalized  types.Weights
	confidence    float64
	tieBreakRules []types.TieBreakRule
	conflictRules types.ConflictRules
}

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithProfile registers a user profile.
func WithProfile(p model.UserProfile) Option {
	return func(s *InMemoryStore) {
		rec := s.record(p.ID)
		rec.profile = p
	}
}

// WithWeights registers explicit scoring weights for a user.
func WithWeights(userID string, w types.Weights) Option {
	return func(s *InMemoryStore) {
		s.record(userID).weights = w.Clone()
	}
}

// WithPersonalizedWeights registers learned weights and their confidence.
func WithPersonalizedWeights(userID string, w types.Weights, confidence float64) Option {
	return func(s *InMemoryStore) {
		rec := s.record(userID)
		rec.personalized = w.Clone()
		rec.confidence = types.Clamp01(confidence)
	}
}

// WithTieBreakRules registers a per-user tie-break cascade.
func WithTieBreakRules(userID string, rules ...types.TieBreakRule) Option {
	return func(s *InMemoryStore) {
		s.record(userID).tieBreakRules = rules
	}
}

// WithConflictRules registers a per-user conflict policy table.
func WithConflictRules(userID string, rules types.ConflictRules) Option {
	return func(s *InMemoryStore) {
		s.record(userID).conflictRules = rules
	}
}

// InMemoryStore implements Store from seeded records.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[string]*userRecord
}

// NewInMemoryStore creates a store with configuration options.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{users: make(map[string]*userRecord)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) record(userID string) *userRecord {
	rec, ok := s.users[userID]
	if !ok {
		rec = &userRecord{}
		s.users[userID] = rec
	}
	return rec
}

func (s *InMemoryStore) lookup(ctx context.Context, userID string) (*userRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("preference lookup cancelled: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUser, userID)
	}
	return rec, nil
}

// GetProfile returns the registered profile for userID.
func (s *InMemoryStore) GetProfile(ctx context.Context, userID string) (model.UserProfile, error) {
	rec, err := s.lookup(ctx, userID)
	if err != nil {
		return model.UserProfile{}, err
	}
	return rec.profile, nil
}

// GetScoringWeights returns the user's explicit weights, falling back to
// the deployment defaults.
func (s *InMemoryStore) GetScoringWeights(ctx context.Context, userID string) (types.Weights, error) {
	rec, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec.weights == nil {
		return DefaultWeights(), nil
	}
	return rec.weights.Clone(), nil
}

// GetPersonalizedWeights returns learned weights with confidence;
// confidence zero when no personalization exists yet.
func (s *InMemoryStore) GetPersonalizedWeights(ctx context.Context, userID string) (types.Weights, float64, error) {
	rec, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if rec.personalized == nil {
		base := rec.weights
		if base == nil {
			base = DefaultWeights()
		}
		return base.Clone(), 0, nil
	}
	return rec.personalized.Clone(), rec.confidence, nil
}

// GetTieBreakRules returns the user's cascade, or the default order.
func (s *InMemoryStore) GetTieBreakRules(ctx context.Context, userID string) ([]types.TieBreakRule, error) {
	rec, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rec.tieBreakRules) == 0 {
		return DefaultTieBreakRules(), nil
	}
	out := make([]types.TieBreakRule, len(rec.tieBreakRules))
	copy(out, rec.tieBreakRules)
	return out, nil
}

// GetConflictRules returns the user's conflict policy table, or the
// default table.
func (s *InMemoryStore) GetConflictRules(ctx context.Context, userID string) (types.ConflictRules, error) {
	rec, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec.conflictRules == nil {
		return types.DefaultConflictRules(), nil
	}
	out := make(types.ConflictRules, len(rec.conflictRules))
	for k, v := range rec.conflictRules {
		out[k] = v
	}
	return out, nil
}
