package score

import (
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/prefs"
)

// Involvement scores the match between the event's role demand and the
// user's community-involvement profile.
type Involvement struct{}

// Criterion implements Calculator.
func (Involvement) Criterion() types.Criterion { return types.CriterionInvolvement }

// Score delegates to the preference store's compatibility helper and
// nudges the result by the user's commitment level for demanding roles.
func (Involvement) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	base := prefs.InvolvementCompatibility(user, event)
	if event.RoleDemand == model.RoleVolunteer || event.RoleDemand == model.RoleLeadership {
		base += 0.1 * (types.Clamp01(user.Involvement.Commitment) - 0.5)
	}
	return types.Clamp01(base), false
}
