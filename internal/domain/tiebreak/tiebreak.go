// Package tiebreak orders recommendations whose composite scores are
// equal within tolerance, using a per-user cascade of secondary criteria.
package tiebreak

import (
	"math"
	"sort"
	"time"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// DefaultTolerance treats composite scores this close as tied.
const DefaultTolerance = 1e-9

// Option applies a configuration option to the Breaker.
type Option func(*Breaker)

// WithTolerance sets the equality tolerance for composite scores.
func WithTolerance(tol float64) Option {
	return func(b *Breaker) {
		if tol >= 0 {
			b.tolerance = tol
		}
	}
}

// WithCascade sets the ordered cascade of tie-break rules. An
// alphabetical-by-event-ID stage is always appended as final arbiter so
// the resulting order is total.
func WithCascade(rules ...types.TieBreakRule) Option {
	return func(b *Breaker) {
		if len(rules) > 0 {
			b.cascade = rules
		}
	}
}

// WithNow fixes the reference instant for time-proximity comparison.
func WithNow(now time.Time) Option {
	return func(b *Breaker) {
		b.now = now
	}
}

// Breaker applies the tie-break cascade.
type Breaker struct {
	tolerance float64
	cascade   []types.TieBreakRule
	now       time.Time
}

// NewBreaker creates a Breaker with configuration options.
func NewBreaker(opts ...Option) *Breaker {
	b := &Breaker{
		tolerance: DefaultTolerance,
		cascade: []types.TieBreakRule{
			types.TieBreakCulturalRelevance,
			types.TieBreakCapacity,
			types.TieBreakTimeProximity,
		},
		now: time.Now(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Sort orders recommendations by descending composite score, breaking
// ties through the cascade. The result is a strict total order: the
// final alphabetical stage never leaves two events unordered.
func (b *Breaker) Sort(recs []types.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return b.Less(recs[i], recs[j])
	})
}

// Less reports whether x ranks strictly before y.
func (b *Breaker) Less(x, y types.Recommendation) bool {
	if math.Abs(x.Score.Value-y.Score.Value) > b.tolerance {
		return x.Score.Value > y.Score.Value
	}
	for _, rule := range b.cascade {
		if cmp := b.compare(rule, x, y); cmp != 0 {
			return cmp < 0
		}
	}
	return x.Event.ID < y.Event.ID
}

// compare returns -1 when x ranks before y under the rule, +1 for the
// reverse, 0 when the rule cannot separate them.
func (b *Breaker) compare(rule types.TieBreakRule, x, y types.Recommendation) int {
	switch rule {
	case types.TieBreakCulturalRelevance:
		cx, cy := culturalRelevance(x), culturalRelevance(y)
		switch {
		case cx > cy:
			return -1
		case cx < cy:
			return 1
		}
		// Equal cultural components: separate by nature alignment.
		nx, ny := natureRelevance(x.Event.Nature), natureRelevance(y.Event.Nature)
		switch {
		case nx > ny:
			return -1
		case nx < ny:
			return 1
		}
	case types.TieBreakCapacity:
		switch {
		case x.Event.Capacity > y.Event.Capacity:
			return -1
		case x.Event.Capacity < y.Event.Capacity:
			return 1
		}
	case types.TieBreakTimeProximity:
		dx, dy := absDuration(x.Event.Start.Sub(b.now)), absDuration(y.Event.Start.Sub(b.now))
		switch {
		case dx < dy:
			return -1
		case dx > dy:
			return 1
		}
	case types.TieBreakAlphabetical:
		switch {
		case x.Event.ID < y.Event.ID:
			return -1
		case x.Event.ID > y.Event.ID:
			return 1
		}
	}
	return 0
}

func culturalRelevance(r types.Recommendation) float64 {
	return r.Score.Components[types.CriterionCultural]
}

// natureRelevance ranks event natures by cultural salience for the
// cascade's cultural-relevance stage.
func natureRelevance(n model.EventNature) int {
	switch n {
	case model.NatureReligious:
		return 5
	case model.NatureCultural:
		return 4
	case model.NatureFamily:
		return 3
	case model.NatureEducational:
		return 2
	case model.NatureProfessional:
		return 1
	default:
		return 0
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
