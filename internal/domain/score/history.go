package score

import (
	"math"
	"time"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// historyHalfLife controls recency weighting of attendance records: a
// record this old counts half as much as one from today.
const historyHalfLife = 180 * 24 * time.Hour

// History scores how well an event's nature matches attendance history
// and learned preference patterns.
type History struct{}

// Criterion implements Calculator.
func (History) Criterion() types.Criterion { return types.CriterionHistory }

// Score combines two signals: a recency-weighted satisfaction average
// over history records of the same nature, and the learned pattern
// weight for that nature scaled by the learner's confidence. A user
// with neither signal gets the fallback.
func (History) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	nature := look.Nature(event)
	if nature == model.NatureUnknown {
		return Fallback, true
	}

	attended, attendedOK := recencyWeightedSatisfaction(user.History, nature, look.Date)
	learned, confidence, learnedOK := patternAffinity(user.Patterns, nature)

	switch {
	case attendedOK && learnedOK:
		// The learner's confidence decides how much the pattern pulls
		// the historical average.
		return types.Clamp01((1-confidence)*attended + confidence*learned), false
	case attendedOK:
		return types.Clamp01(attended), false
	case learnedOK:
		return types.Clamp01(Fallback + confidence*(learned-Fallback)), false
	default:
		return Fallback, true
	}
}

func recencyWeightedSatisfaction(history []model.AttendanceRecord, nature model.EventNature, now time.Time) (float64, bool) {
	var sum, weight float64
	for _, rec := range history {
		if rec.Nature != nature {
			continue
		}
		age := now.Sub(rec.Date)
		if age < 0 {
			age = 0
		}
		w := math.Exp2(-float64(age) / float64(historyHalfLife))
		sum += w * types.Clamp01(rec.Satisfaction)
		weight += w
	}
	if weight == 0 {
		return 0, false
	}
	return sum / weight, true
}

func patternAffinity(patterns []model.PreferencePattern, nature model.EventNature) (weight, confidence float64, ok bool) {
	for _, p := range patterns {
		if p.Nature == nature {
			return types.Clamp01(p.Weight), types.Clamp01(p.Confidence), true
		}
	}
	return 0, 0, false
}
