package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/rank"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/score"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// The public operations. Every operation takes a user identifier and a
// candidate event collection, returns a freshly computed ordered slice,
// and leaves its inputs untouched.

// GetRecommendations runs the standard pipeline: all criteria, the
// user's stored weights, travel-ceiling and cultural-floor filtering.
func (e *Engine) GetRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "recommendations",
		culturalFilter: true,
	})
}

// GetRecommendationsForDate scores against a target date instead of
// "now", with temporal and cultural emphasis raised for that date.
func (e *Engine) GetRecommendationsForDate(ctx context.Context, userID string, events []model.Event, date time.Time) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "recommendations_for_date",
		date:           date,
		boost:          []types.Criterion{types.CriterionTime, types.CriterionCultural},
		culturalFilter: true,
	})
}

// GetCulturallyFilteredRecommendations runs only the cultural calculator
// plus a hard sensitivity-floor filter.
func (e *Engine) GetCulturallyFilteredRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "culturally_filtered",
		criteria:       []types.Criterion{types.CriterionCultural},
		culturalFilter: true,
	})
}

// GetDiasporaOptimizedRecommendations emphasizes diaspora community
// geography: distance, density and regional fit.
func (e *Engine) GetDiasporaOptimizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "diaspora_optimized",
		boost:          []types.Criterion{types.CriterionGeographic, types.CriterionRegional},
		culturalFilter: true,
	})
}

// GetFestivalOptimizedRecommendations boosts cultural and temporal
// alignment with the named festival's period.
func (e *Engine) GetFestivalOptimizedRecommendations(ctx context.Context, userID string, events []model.Event, festival string) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "festival_optimized",
		festival:       festival,
		boost:          []types.Criterion{types.CriterionCultural, types.CriterionTime},
		culturalFilter: true,
	})
}

// GetCategorizedRecommendations emphasizes event-nature alignment with
// the user's declared category preferences.
func (e *Engine) GetCategorizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "categorized",
		boost:          []types.Criterion{types.CriterionCategory},
		culturalFilter: true,
	})
}

// GetCalendarValidatedRecommendations drops events the cultural calendar
// rejects before scoring the remainder.
func (e *Engine) GetCalendarValidatedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:             "calendar_validated",
		calendarValidate: true,
		culturalFilter:   true,
	})
}

// GetClusterOptimizedRecommendations feeds community-cluster analysis
// into the geographic scores and emphasizes them.
func (e *Engine) GetClusterOptimizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:            "cluster_optimized",
		clusterAnalysis: true,
		boost:           []types.Criterion{types.CriterionGeographic, types.CriterionProximity},
		culturalFilter:  true,
	})
}

// GetDistanceFilteredRecommendations applies the travel ceiling strictly
// and orders by geographic fit.
func (e *Engine) GetDistanceFilteredRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:  "distance_filtered",
		boost: []types.Criterion{types.CriterionGeographic},
	})
}

// GetRegionalOptimizedRecommendations emphasizes regional-preference fit.
func (e *Engine) GetRegionalOptimizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "regional_optimized",
		boost:          []types.Criterion{types.CriterionRegional},
		culturalFilter: true,
	})
}

// GetAccessibilityOptimizedRecommendations emphasizes transportation
// accessibility.
func (e *Engine) GetAccessibilityOptimizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "accessibility_optimized",
		boost:          []types.Criterion{types.CriterionAccessibility},
		culturalFilter: true,
	})
}

// GetProximityOptimizedRecommendations emphasizes multi-location
// centroid proximity.
func (e *Engine) GetProximityOptimizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "proximity_optimized",
		boost:          []types.Criterion{types.CriterionProximity},
		culturalFilter: true,
	})
}

// GetLocationEdgeCaseRecommendations keeps events with missing or
// irregular location data, scoring them by fallback and logging each
// handled case. Nothing is dropped for bad location data.
func (e *Engine) GetLocationEdgeCaseRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:          "location_edge_case",
		locationAudit: true,
	})
}

// GetHistoryBasedRecommendations emphasizes attendance-history patterns.
func (e *Engine) GetHistoryBasedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "history_based",
		boost:          []types.Criterion{types.CriterionHistory},
		culturalFilter: true,
	})
}

// GetAdaptiveRecommendations blends learned personalized weights in by
// the learner's confidence.
func (e *Engine) GetAdaptiveRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "adaptive",
		personalized:   true,
		culturalFilter: true,
	})
}

// GetTimeOptimizedRecommendations emphasizes time-slot preference fit.
func (e *Engine) GetTimeOptimizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "time_optimized",
		boost:          []types.Criterion{types.CriterionTime},
		culturalFilter: true,
	})
}

// GetFamilyOptimizedRecommendations emphasizes household-composition fit.
func (e *Engine) GetFamilyOptimizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "family_optimized",
		boost:          []types.Criterion{types.CriterionFamily},
		culturalFilter: true,
	})
}

// GetAgeOptimizedRecommendations excludes events behind an age gate the
// user fails and emphasizes audience fit for the rest.
func (e *Engine) GetAgeOptimizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "age_optimized",
		ageFilter:      true,
		boost:          []types.Criterion{types.CriterionFamily},
		culturalFilter: true,
	})
}

// GetLanguageOptimizedRecommendations emphasizes language fit.
func (e *Engine) GetLanguageOptimizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "language_optimized",
		boost:          []types.Criterion{types.CriterionLanguage},
		culturalFilter: true,
	})
}

// GetInvolvementOptimizedRecommendations emphasizes community-involvement
// fit.
func (e *Engine) GetInvolvementOptimizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:           "involvement_optimized",
		boost:          []types.Criterion{types.CriterionInvolvement},
		culturalFilter: true,
	})
}

// GetScoredRecommendations runs the complete pipeline: every calculator,
// personalized weights, both filters, conflict resolution and the
// tie-break cascade.
func (e *Engine) GetScoredRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:             "scored",
		personalized:     true,
		culturalFilter:   true,
		resolveConflicts: true,
	})
}

// CalculatePersonalizedScore scores a single event for a user. No
// cross-candidate normalization applies: the composite aggregates the
// raw component scores under the user's blended weights.
func (e *Engine) CalculatePersonalizedScore(ctx context.Context, userID string, event model.Event) (types.CompositeScore, error) {
	if err := ctx.Err(); err != nil {
		return types.CompositeScore{}, fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	uc, err := e.resolveUser(ctx, userID, opRequest{name: "personalized_score", personalized: true})
	if err != nil {
		return types.CompositeScore{}, err
	}
	look, err := e.buildLookup(ctx, uc.profile, []model.Event{event}, opRequest{})
	if err != nil {
		return types.CompositeScore{}, err
	}

	components := make(types.ComponentScores)
	var edges []types.Criterion
	for _, c := range score.All() {
		v, fallback := c.Score(uc.profile, event, look)
		components[c.Criterion()] = types.Clamp01(v)
		if fallback {
			edges = append(edges, c.Criterion())
		}
	}
	return rank.Aggregate(components, uc.weights, edges), nil
}

// GetConflictResolvedRecommendations runs the standard pipeline plus
// table-driven conflict resolution.
func (e *Engine) GetConflictResolvedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name:             "conflict_resolved",
		resolveConflicts: true,
	})
}

// GetEdgeCaseHandledRecommendations scores every candidate, degrading
// missing or invalid data to fallback scores instead of dropping events
// or failing.
func (e *Engine) GetEdgeCaseHandledRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name: "edge_case_handled",
	})
}

// GetNormalizedRecommendations runs the standard pipeline; composite
// scores aggregate min-max normalized components across the candidate
// set.
func (e *Engine) GetNormalizedRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name: "normalized",
	})
}

// GetTieBrokenRecommendations runs the standard pipeline with the user's
// tie-break cascade deciding every near-equal composite pair.
func (e *Engine) GetTieBrokenRecommendations(ctx context.Context, userID string, events []model.Event) ([]types.Recommendation, error) {
	return e.run(ctx, userID, events, opRequest{
		name: "tie_broken",
	})
}
