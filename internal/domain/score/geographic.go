package score

import (
	"math"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// geographicHalfDistanceKM is the distance at which the raw geographic
// score decays to 0.5.
const geographicHalfDistanceKM = 20.0

// diasporaDensityWeight controls how much community density lifts the
// geographic score inside diaspora hubs.
const diasporaDensityWeight = 0.2

// Geographic scores distance from home, lifted by diaspora community
// density at the venue.
type Geographic struct{}

// Criterion implements Calculator.
func (Geographic) Criterion() types.Criterion { return types.CriterionGeographic }

// Score decays exponentially with distance. Events past the user's
// travel ceiling are excluded before scoring, so no ceiling check is
// repeated here. Missing distance data falls back.
func (Geographic) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	dist, ok := look.DistanceKM[event.ID]
	if !ok || math.IsNaN(dist) || dist < 0 {
		return Fallback, true
	}
	base := math.Exp2(-dist / geographicHalfDistanceKM)
	if look.Diaspora[event.ID] {
		base += diasporaDensityWeight * types.Clamp01(look.Density[event.ID])
	}
	return types.Clamp01(base), false
}

// Regional scores alignment between the event and the preferences of
// the user's home region.
type Regional struct{}

// Criterion implements Calculator.
func (Regional) Criterion() types.Criterion { return types.CriterionRegional }

// Score reads the batched regional-preference match.
func (Regional) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	v, ok := look.RegionalMatch[event.ID]
	if !ok {
		return Fallback, true
	}
	return types.Clamp01(v), false
}

// Proximity scores multi-location centroid proximity.
type Proximity struct{}

// Criterion implements Calculator.
func (Proximity) Criterion() types.Criterion { return types.CriterionProximity }

// Score reads the batched multi-location proximity score.
func (Proximity) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	v, ok := look.ProximityScore[event.ID]
	if !ok {
		return Fallback, true
	}
	return types.Clamp01(v), false
}

// Accessibility scores transportation-mode match.
type Accessibility struct{}

// Criterion implements Calculator.
func (Accessibility) Criterion() types.Criterion { return types.CriterionAccessibility }

// Score reads the batched transportation accessibility score.
func (Accessibility) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	v, ok := look.Accessibility[event.ID]
	if !ok {
		return Fallback, true
	}
	return types.Clamp01(v), false
}
