package score

import (
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// Poyaday and festival adjustments layered on top of the calendar's
// appropriateness score.
const (
	poyadayAlignedBoost   = 0.10
	poyadayMisalignedCut  = 0.20
	festivalOptimalBoost  = 0.15
	festivalInPeriodBoost = 0.05
)

// Cultural scores cultural appropriateness for the user's background,
// sensitivity and the target date.
type Cultural struct{}

// Criterion implements Calculator.
func (Cultural) Criterion() types.Criterion { return types.CriterionCultural }

// Score starts from the calendar's appropriateness and layers date
// context on top: observance-aligned events rise on Poyadays, misaligned
// ones fall further; festival-aligned events rise inside their period.
func (Cultural) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	base, ok := look.Appropriateness[event.ID]
	if !ok {
		return Fallback, true
	}
	nature := look.Nature(event)
	if look.Poyaday {
		switch nature {
		case model.NatureReligious, model.NatureFamily:
			base += poyadayAlignedBoost
		case model.NatureSecular, model.NatureProfessional:
			base -= poyadayMisalignedCut
		}
		if event.HasMarker("meditation") || event.HasMarker("poyaday") {
			base += poyadayAlignedBoost
		}
	}
	if look.Festival != nil && look.Festival.Contains(event.Start) {
		if look.OptimalTiming[event.ID] {
			base += festivalOptimalBoost
		} else {
			base += festivalInPeriodBoost
		}
	}
	return types.Clamp01(base), false
}
