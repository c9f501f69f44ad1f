// Package rank combines normalized component scores into composite
// scores and orders recommendations.
//
// The combination formula is a weighted mean: sum(w_c * s_c) / sum(w_c).
// A weighted mean rather than a plain weighted sum keeps composites in
// [0,1] for any non-negative weight vector, which is a pipeline
// invariant. Chosen over non-linear combinations for traceability; the
// behavioral contract only constrains relative ordering.
package rank

import (
	"sort"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// Aggregate derives one composite score from normalized components.
// Criteria absent from the components contribute nothing and their
// weight is left out of the divisor, so partially scored requests (the
// single-criterion operations) still produce meaningful composites.
func Aggregate(components types.ComponentScores, weights types.Weights, edgeCases []types.Criterion) types.CompositeScore {
	var sum, total float64
	for criterion, v := range components {
		w := weights[criterion]
		if w <= 0 {
			continue
		}
		sum += w * types.Clamp01(v)
		total += w
	}
	value := 0.0
	if total > 0 {
		value = sum / total
	}
	return types.CompositeScore{
		Value:      types.Clamp01(value),
		Components: components.Clone(),
		EdgeCases:  append([]types.Criterion(nil), edgeCases...),
	}
}

// Sort orders recommendations by descending composite score. The sort is
// stable; exact ties within tolerance are left to the tie-break cascade,
// which runs after ranking.
func Sort(recs []types.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score.Value > recs[j].Score.Value
	})
}

// Boost returns a copy of weights with each listed criterion's weight
// multiplied by factor. Used by the date-, festival- and
// criterion-optimized request variants.
func Boost(weights types.Weights, factor float64, criteria ...types.Criterion) types.Weights {
	out := weights.Clone()
	for _, c := range criteria {
		out[c] *= factor
	}
	return out
}
