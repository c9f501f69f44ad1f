// Package types contains common types used across the recommendation engine.
package types

import (
	"math"
	"sort"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
)

// Criterion names one scoring dimension.
type Criterion string

// Scoring criteria.
const (
	CriterionCultural      Criterion = "cultural"
	CriterionGeographic    Criterion = "geographic"
	CriterionRegional      Criterion = "regional"
	CriterionProximity     Criterion = "proximity"
	CriterionAccessibility Criterion = "accessibility"
	CriterionHistory       Criterion = "history"
	CriterionTime          Criterion = "time"
	CriterionLanguage      Criterion = "language"
	CriterionFamily        Criterion = "family"
	CriterionCategory      Criterion = "category"
	CriterionInvolvement   Criterion = "involvement"
)

// Criteria returns all criteria in canonical order.
func Criteria() []Criterion {
	return []Criterion{
		CriterionCultural,
		CriterionGeographic,
		CriterionRegional,
		CriterionProximity,
		CriterionAccessibility,
		CriterionHistory,
		CriterionTime,
		CriterionLanguage,
		CriterionFamily,
		CriterionCategory,
		CriterionInvolvement,
	}
}

// Weights maps each criterion to its relative importance. Weights need
// not sum to one; aggregation divides by the total.
type Weights map[Criterion]float64

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for c, v := range w {
		out[c] = v
	}
	return out
}

// Total returns the sum of all weights.
func (w Weights) Total() float64 {
	var t float64
	for _, v := range w {
		t += v
	}
	return t
}

// Blend mixes personalized weights into defaults by confidence in [0,1]:
// confidence 0 keeps the defaults, 1 uses the personalized weights alone.
func (w Weights) Blend(personal Weights, confidence float64) Weights {
	confidence = Clamp01(confidence)
	out := make(Weights, len(w))
	for _, c := range Criteria() {
		out[c] = (1-confidence)*w[c] + confidence*personal[c]
	}
	return out
}

// ComponentScores holds one bounded score per criterion for one event.
type ComponentScores map[Criterion]float64

// Clone returns an independent copy.
func (s ComponentScores) Clone() ComponentScores {
	out := make(ComponentScores, len(s))
	for c, v := range s {
		out[c] = v
	}
	return out
}

// Clamp01 bounds v to [0,1]; NaN maps to 0 so a broken upstream value
// can never leak out of range.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// CompositeScore is the single ranking value for one event, kept together
// with the component scores it was derived from for traceability.
type CompositeScore struct {
	Value      float64
	Components ComponentScores

	// EdgeCases lists criteria that were scored by fallback rather than
	// from real data.
	EdgeCases []Criterion
}

// EdgeCaseHandled reports whether any criterion was scored by fallback.
func (c CompositeScore) EdgeCaseHandled() bool {
	return len(c.EdgeCases) > 0
}

// HasEdgeCase reports whether the given criterion was scored by fallback.
func (c CompositeScore) HasEdgeCase(criterion Criterion) bool {
	for _, e := range c.EdgeCases {
		if e == criterion {
			return true
		}
	}
	return false
}

// SortedEdgeCases returns the edge-case criteria in deterministic order.
func (c CompositeScore) SortedEdgeCases() []Criterion {
	out := make([]Criterion, len(c.EdgeCases))
	copy(out, c.EdgeCases)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Recommendation pairs one event with its composite score. It is the
// externally visible unit of engine output.
type Recommendation struct {
	Event model.Event
	Score CompositeScore
}

// ConflictKind names a class of conflict between recommendations.
type ConflictKind string

// Conflict kinds.
const (
	ConflictTimeOverlap   ConflictKind = "time_overlap"
	ConflictCulturalFloor ConflictKind = "cultural_floor"
)

// Outcome is the resolution result for a conflict group member.
type Outcome string

// Resolution outcomes.
const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
)

// ConflictGroup is a set of recommendations that conflict, annotated
// with the resolution outcome and a human-readable reason.
type ConflictGroup struct {
	Recommendations []Recommendation
	Kind            ConflictKind
	Outcome         Outcome
	Reason          string
}

// ResolutionPolicy selects how a conflict kind is resolved.
type ResolutionPolicy string

// Resolution policies.
const (
	PolicyKeepHigherPriority ResolutionPolicy = "keep_higher_priority"
	PolicyRejectOutright     ResolutionPolicy = "reject_outright"
)

// ConflictRules maps each conflict kind to its resolution policy.
type ConflictRules map[ConflictKind]ResolutionPolicy

// DefaultConflictRules returns the standard policy table.
func DefaultConflictRules() ConflictRules {
	return ConflictRules{
		ConflictTimeOverlap:   PolicyKeepHigherPriority,
		ConflictCulturalFloor: PolicyRejectOutright,
	}
}

// TieBreakRule names one stage of the tie-break cascade.
type TieBreakRule string

// Tie-break rules.
const (
	TieBreakCulturalRelevance TieBreakRule = "cultural_relevance"
	TieBreakCapacity          TieBreakRule = "capacity"
	TieBreakTimeProximity     TieBreakRule = "time_proximity"
	TieBreakAlphabetical      TieBreakRule = "alphabetical"
)

// KnownTieBreakRule reports whether r is a recognized cascade stage.
func KnownTieBreakRule(r TieBreakRule) bool {
	switch r {
	case TieBreakCulturalRelevance, TieBreakCapacity, TieBreakTimeProximity, TieBreakAlphabetical:
		return true
	}
	return false
}
