// Package score implements the per-criterion calculators of the
// recommendation pipeline.
//
// Each calculator is a pure function over (UserProfile, Event) plus a
// Lookup of provider data batched once per request. Calculators never
// fail: missing or structurally invalid data degrades to the fallback
// score and is flagged so callers can distinguish "scored normally"
// from "scored by fallback". Every returned value lies in [0,1].
package score

import (
	"time"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/calendar"
)

// Fallback is the conservative default used when a criterion cannot be
// scored from real data.
const Fallback = 0.5

// Lookup carries provider data resolved once per request, keyed by event
// ID. A missing entry means the provider could not answer for that event
// (failure, timeout, or missing input data); calculators then fall back.
type Lookup struct {
	// Date is the target date context for the request, normally "now".
	Date time.Time

	// Poyaday reports whether Date is a Poyaday.
	Poyaday bool

	// Festival is the active festival period for festival-optimized
	// requests; nil otherwise.
	Festival *calendar.FestivalPeriod

	// OptimalTiming flags events whose schedule aligns with Festival.
	OptimalTiming map[string]bool

	// Appropriateness holds per-event cultural appropriateness for the
	// user's background and the target date.
	Appropriateness map[string]float64

	// Natures holds the calendar's event-nature classification.
	Natures map[string]model.EventNature

	// DistanceKM holds home-to-venue distance.
	DistanceKM map[string]float64

	// Density holds community-cluster density at the venue.
	Density map[string]float64

	// Diaspora flags venues inside recognized diaspora hubs.
	Diaspora map[string]bool

	// RegionalMatch holds the region-preference match score.
	RegionalMatch map[string]float64

	// Accessibility holds the transportation accessibility score.
	Accessibility map[string]float64

	// ProximityScore holds the multi-location centroid proximity score.
	ProximityScore map[string]float64
}

// NewLookup returns an empty lookup for the given target date.
func NewLookup(date time.Time) *Lookup {
	return &Lookup{
		Date:            date,
		OptimalTiming:   make(map[string]bool),
		Appropriateness: make(map[string]float64),
		Natures:         make(map[string]model.EventNature),
		DistanceKM:      make(map[string]float64),
		Density:         make(map[string]float64),
		Diaspora:        make(map[string]bool),
		RegionalMatch:   make(map[string]float64),
		Accessibility:   make(map[string]float64),
		ProximityScore:  make(map[string]float64),
	}
}

// Nature returns the classified nature for an event, preferring the
// calendar's classification over the event's own field.
func (l *Lookup) Nature(event model.Event) model.EventNature {
	if n, ok := l.Natures[event.ID]; ok && n != model.NatureUnknown {
		return n
	}
	if event.Nature != "" {
		return event.Nature
	}
	return model.NatureUnknown
}

// Calculator computes one bounded component score. The second return
// value is true when the score is an edge-case fallback.
type Calculator interface {
	Criterion() types.Criterion
	Score(user model.UserProfile, event model.Event, look *Lookup) (float64, bool)
}

// All returns every calculator in canonical criterion order.
func All() []Calculator {
	return []Calculator{
		Cultural{},
		Geographic{},
		Regional{},
		Proximity{},
		Accessibility{},
		History{},
		Temporal{},
		Language{},
		Family{},
		Category{},
		Involvement{},
	}
}

// ForCriteria returns the calculators for the given criteria, in the
// given order. Unknown criteria are skipped.
func ForCriteria(criteria ...types.Criterion) []Calculator {
	byCriterion := make(map[types.Criterion]Calculator)
	for _, c := range All() {
		byCriterion[c.Criterion()] = c
	}
	var out []Calculator
	for _, cr := range criteria {
		if c, ok := byCriterion[cr]; ok {
			out = append(out, c)
		}
	}
	return out
}
