package score

import (
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/prefs"
)

// Family scores event suitability against household composition and the
// user's age.
type Family struct{}

// Criterion implements Calculator.
func (Family) Criterion() types.Criterion { return types.CriterionFamily }

// Score blends family and age compatibility, weighting the family side
// more heavily. An age gate the user fails zeroes the score.
func (Family) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	age := prefs.AgeCompatibility(user, event)
	if age == 0 {
		return 0, false
	}
	fam := prefs.FamilyCompatibility(user, event)
	return types.Clamp01(0.7*fam + 0.3*age), false
}
