// Package normalize rescales raw component scores across a candidate set
// so a criterion with a naturally narrow raw range is not structurally
// underweighted against one with a wide range.
//
// Min-max rescaling was chosen over z-score normalization: outputs stay
// in [0,1] by construction and the operation is idempotent, both of
// which are pipeline invariants.
package normalize

import (
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// epsilon treats a criterion whose observed range is this narrow as
// degenerate: every candidate then maps to 1.0 so a uniform criterion
// can neither dominate nor penalize.
const epsilon = 1e-9

// MinMax rescales each criterion independently across the candidate set
// and returns a fresh slice; the inputs are not mutated. Normalization
// is per-request state only.
func MinMax(set []types.ComponentScores) []types.ComponentScores {
	if len(set) == 0 {
		return nil
	}
	out := make([]types.ComponentScores, len(set))
	for i, s := range set {
		out[i] = s.Clone()
	}
	for _, criterion := range types.Criteria() {
		lo, hi, seen := observedRange(set, criterion)
		if !seen {
			continue
		}
		for i := range out {
			v, ok := set[i][criterion]
			if !ok {
				continue
			}
			if hi-lo < epsilon {
				out[i][criterion] = 1.0
				continue
			}
			out[i][criterion] = types.Clamp01((v - lo) / (hi - lo))
		}
	}
	return out
}

func observedRange(set []types.ComponentScores, criterion types.Criterion) (lo, hi float64, seen bool) {
	for _, s := range set {
		v, ok := s[criterion]
		if !ok {
			continue
		}
		if !seen || v < lo {
			lo = v
		}
		if !seen || v > hi {
			hi = v
		}
		seen = true
	}
	return lo, hi, seen
}
