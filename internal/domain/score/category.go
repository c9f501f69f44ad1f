package score

import (
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// Category scores event-nature alignment with the user's declared
// category preferences.
type Category struct{}

// Criterion implements Calculator.
func (Category) Criterion() types.Criterion { return types.CriterionCategory }

// Score reads the declared per-nature affinity; users without declared
// preferences, and events the calendar cannot classify, fall back.
func (Category) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	nature := look.Nature(event)
	if nature == model.NatureUnknown || len(user.CategoryPreferences) == 0 {
		return Fallback, true
	}
	if v, ok := user.CategoryPreferences[nature]; ok {
		return types.Clamp01(v), false
	}
	// Unlisted natures are mildly disfavored rather than unknown.
	return 0.3, false
}
