// Package conflict detects scheduling and cultural conflicts among
// scored recommendations and resolves them by a table-driven policy.
package conflict

import (
	"fmt"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithRules sets the per-kind resolution policy table.
func WithRules(rules types.ConflictRules) Option {
	return func(r *Resolver) {
		if rules != nil {
			r.rules = rules
		}
	}
}

// WithCulturalFloor sets the minimum cultural component score below
// which a recommendation is culturally inappropriate for the user.
func WithCulturalFloor(floor float64) Option {
	return func(r *Resolver) {
		r.floor = types.Clamp01(floor)
	}
}

// Resolver applies conflict policies to a ranked candidate set.
type Resolver struct {
	rules types.ConflictRules
	floor float64
}

// NewResolver creates a resolver with configuration options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		rules: types.DefaultConflictRules(),
		floor: 0,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the accepted recommendations in their incoming order,
// plus one ConflictGroup per detected conflict for auditability.
// Exclusion is a normal outcome, never an error.
func (r *Resolver) Resolve(recs []types.Recommendation) ([]types.Recommendation, []types.ConflictGroup) {
	rejected := make(map[string]bool)
	var groups []types.ConflictGroup

	groups = append(groups, r.resolveCulturalFloor(recs, rejected)...)
	groups = append(groups, r.resolveTimeOverlaps(recs, rejected)...)

	accepted := make([]types.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if !rejected[rec.Event.ID] {
			accepted = append(accepted, rec)
		}
	}
	return accepted, groups
}

// resolveCulturalFloor rejects recommendations whose cultural score sits
// below the sensitivity floor. The policy table can only make this more
// lenient by omitting the rule entirely.
func (r *Resolver) resolveCulturalFloor(recs []types.Recommendation, rejected map[string]bool) []types.ConflictGroup {
	policy, active := r.rules[types.ConflictCulturalFloor]
	if !active || r.floor <= 0 {
		return nil
	}
	var groups []types.ConflictGroup
	for _, rec := range recs {
		cultural, ok := rec.Score.Components[types.CriterionCultural]
		if !ok || cultural >= r.floor {
			continue
		}
		// Fallback-scored events pass: missing data must not get an
		// event rejected as inappropriate.
		if rec.Score.HasEdgeCase(types.CriterionCultural) {
			continue
		}
		outcome := types.OutcomeRejected
		if policy != types.PolicyRejectOutright {
			outcome = types.OutcomeAccepted
		} else {
			rejected[rec.Event.ID] = true
		}
		groups = append(groups, types.ConflictGroup{
			Recommendations: []types.Recommendation{rec},
			Kind:            types.ConflictCulturalFloor,
			Outcome:         outcome,
			Reason: fmt.Sprintf("cultural score %.2f below sensitivity floor %.2f",
				cultural, r.floor),
		})
	}
	return groups
}

// resolveTimeOverlaps walks every pair of surviving recommendations and
// keeps the higher-priority member of each overlapping pair.
func (r *Resolver) resolveTimeOverlaps(recs []types.Recommendation, rejected map[string]bool) []types.ConflictGroup {
	policy, active := r.rules[types.ConflictTimeOverlap]
	if !active || policy != types.PolicyKeepHigherPriority {
		return nil
	}
	var groups []types.ConflictGroup
	for i := 0; i < len(recs); i++ {
		if rejected[recs[i].Event.ID] {
			continue
		}
		for j := i + 1; j < len(recs); j++ {
			if rejected[recs[j].Event.ID] {
				continue
			}
			if !recs[i].Event.Overlaps(recs[j].Event) {
				continue
			}
			keep, drop := recs[i], recs[j]
			if priority(drop) > priority(keep) {
				keep, drop = drop, keep
			}
			rejected[drop.Event.ID] = true
			groups = append(groups, types.ConflictGroup{
				Recommendations: []types.Recommendation{keep, drop},
				Kind:            types.ConflictTimeOverlap,
				Outcome:         types.OutcomeRejected,
				Reason: fmt.Sprintf("%q overlaps %q; kept higher priority %q",
					drop.Event.Title, keep.Event.Title, keep.Event.Title),
			})
		}
	}
	return groups
}

// priority derives the comparison value for time-overlap resolution: an
// explicit priority tag wins over the composite score.
func priority(rec types.Recommendation) float64 {
	if rec.Event.Priority != 0 {
		return float64(rec.Event.Priority)
	}
	return rec.Score.Value
}
