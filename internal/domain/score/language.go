package score

import (
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/prefs"
)

// Language scores event languages against user language preferences.
type Language struct{}

// Criterion implements Calculator.
func (Language) Criterion() types.Criterion { return types.CriterionLanguage }

// Score delegates to the preference store's pure compatibility helper.
// Events that declare no languages fall back rather than scoring zero.
func (Language) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	if len(event.Languages) == 0 {
		return Fallback, true
	}
	return types.Clamp01(prefs.LanguageCompatibility(user, event)), false
}
