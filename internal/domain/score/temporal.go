package score

import (
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/prefs"
)

// festivalTimingScore is awarded to events whose schedule the calendar
// flags as optimally aligned with the active festival period.
const festivalTimingScore = 0.9

// Temporal scores the event's day and hour against the user's learned
// time-slot preference table.
type Temporal struct{}

// Criterion implements Calculator.
func (Temporal) Criterion() types.Criterion { return types.CriterionTime }

// Score consults the time-slot table; during festival-optimized
// requests, calendar-confirmed optimal timing overrides a weaker slot
// match. Events without a start time fall back.
func (Temporal) Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool) {
	if event.Start.IsZero() {
		return Fallback, true
	}
	base := prefs.TimeCompatibility(user, event.Start)
	if look.Festival != nil && look.OptimalTiming[event.ID] && base < festivalTimingScore {
		base = festivalTimingScore
	}
	return types.Clamp01(base), false
}
