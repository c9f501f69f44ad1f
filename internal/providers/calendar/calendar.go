// Package calendar defines the cultural calendar provider contract and an
// in-memory reference implementation used by tests and the demo binary.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped via this package's error helpers.
package calendar

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
)

// SignificanceLevel grades a significant date.
type SignificanceLevel string

// Significance levels.
const (
	SignificanceMajor    SignificanceLevel = "major"
	SignificanceModerate SignificanceLevel = "moderate"
	SignificanceMinor    SignificanceLevel = "minor"
)

// SignificantDate is a culturally significant date in a given year.
type SignificantDate struct {
	Name         string
	Date         time.Time
	Significance SignificanceLevel
}

// FestivalPeriod is a named festival window.
type FestivalPeriod struct {
	Name  string
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period (inclusive bounds).
func (p FestivalPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Validation is the outcome of checking an event against the calendar.
type Validation struct {
	IsValid     bool
	Reason      string
	Suggestions []string
}

// Calendar resolves significant dates, festival periods, Poyaday status,
// event-nature classification and appropriateness scores.
type Calendar interface {
	GetSignificantDates(ctx context.Context, year int) ([]SignificantDate, error)
	IsPoyaday(ctx context.Context, date time.Time) (bool, error)
	GetFestivalPeriod(ctx context.Context, name string, year int) (FestivalPeriod, error)
	IsOptimalFestivalTiming(ctx context.Context, event model.Event, period FestivalPeriod) (bool, error)
	ClassifyEventNature(ctx context.Context, event model.Event) (model.EventNature, error)
	GetEventAppropriateness(ctx context.Context, event model.Event, date time.Time) (float64, error)
	CalculateAppropriateness(ctx context.Context, event model.Event, culturalBackground string) (float64, error)
	ValidateEventAgainstCalendar(ctx context.Context, event model.Event) (Validation, error)
}

// Appropriateness adjustments applied on observance days.
const (
	poyadayReligiousBoost  = 0.25
	poyadaySecularPenalty  = 0.45
	festivalAlignmentBoost = 0.15
	defaultAppropriateness = 0.5
)

// Option applies a configuration option to the InMemoryCalendar.
type Option func(*InMemoryCalendar)

// WithPoyadays registers Poyadays (compared by calendar day).
func WithPoyadays(dates ...time.Time) Option {
	return func(c *InMemoryCalendar) {
		for _, d := range dates {
			c.poyadays[dayKey(d)] = struct{}{}
		}
	}
}

// WithSignificantDates registers significant dates for lookup by year.
func WithSignificantDates(dates ...SignificantDate) Option {
	return func(c *InMemoryCalendar) {
		c.significant = append(c.significant, dates...)
	}
}

// WithFestivalPeriod registers a festival window, addressable by
// lowercase name and year of its start date.
func WithFestivalPeriod(periods ...FestivalPeriod) Option {
	return func(c *InMemoryCalendar) {
		for _, p := range periods {
			c.festivals[festivalKey(p.Name, p.Start.Year())] = p
		}
	}
}

// WithAppropriateness pins an appropriateness score for a specific event
// ID, overriding the rule-based default.
func WithAppropriateness(eventID string, score float64) Option {
	return func(c *InMemoryCalendar) {
		c.appropriateness[eventID] = score
	}
}

// WithNatureBaseline overrides the baseline appropriateness for an event
// nature.
func WithNatureBaseline(nature model.EventNature, score float64) Option {
	return func(c *InMemoryCalendar) {
		c.natureBaseline[nature] = score
	}
}

// InMemoryCalendar implements Calendar from seeded tables. It is
// deterministic: identical seeds and queries always yield identical
// answers.
type InMemoryCalendar struct {
	poyadays        map[string]struct{}
	significant     []SignificantDate
	festivals       map[string]FestivalPeriod
	appropriateness map[string]float64
	natureBaseline  map[model.EventNature]float64
}

// NewInMemoryCalendar creates a calendar with configuration options.
func NewInMemoryCalendar(opts ...Option) *InMemoryCalendar {
	c := &InMemoryCalendar{
		poyadays:        make(map[string]struct{}),
		festivals:       make(map[string]FestivalPeriod),
		appropriateness: make(map[string]float64),
		natureBaseline: map[model.EventNature]float64{
			model.NatureReligious:    0.9,
			model.NatureCultural:     0.85,
			model.NatureFamily:       0.8,
			model.NatureEducational:  0.75,
			model.NatureProfessional: 0.6,
			model.NatureSecular:      0.4,
			model.NatureUnknown:      defaultAppropriateness,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func festivalKey(name string, year int) string {
	return fmt.Sprintf("%s/%d", strings.ToLower(name), year)
}

// GetSignificantDates returns all registered significant dates in a year,
// ordered by date then name.
func (c *InMemoryCalendar) GetSignificantDates(ctx context.Context, year int) ([]SignificantDate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupCancelled, err)
	}
	var out []SignificantDate
	for _, d := range c.significant {
		if d.Date.Year() == year {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// IsPoyaday reports whether date is a registered Poyaday.
func (c *InMemoryCalendar) IsPoyaday(ctx context.Context, date time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrLookupCancelled, err)
	}
	_, ok := c.poyadays[dayKey(date)]
	return ok, nil
}

// GetFestivalPeriod resolves a festival window by name and year.
func (c *InMemoryCalendar) GetFestivalPeriod(ctx context.Context, name string, year int) (FestivalPeriod, error) {
	if err := ctx.Err(); err != nil {
		return FestivalPeriod{}, fmt.Errorf("%w: %w", ErrLookupCancelled, err)
	}
	p, ok := c.festivals[festivalKey(name, year)]
	if !ok {
		return FestivalPeriod{}, fmt.Errorf("%w: %q in %d", ErrUnknownFestival, name, year)
	}
	return p, nil
}

// IsOptimalFestivalTiming reports whether the event falls inside the
// festival window and carries a matching cultural marker or an aligned
// nature.
func (c *InMemoryCalendar) IsOptimalFestivalTiming(ctx context.Context, event model.Event, period FestivalPeriod) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrLookupCancelled, err)
	}
	if !period.Contains(event.Start) {
		return false, nil
	}
	if event.HasMarker(strings.ToLower(period.Name)) {
		return true, nil
	}
	return event.Nature == model.NatureReligious || event.Nature == model.NatureCultural, nil
}

// ClassifyEventNature returns the declared nature, inferring one from
// cultural markers when the event is unclassified.
func (c *InMemoryCalendar) ClassifyEventNature(ctx context.Context, event model.Event) (model.EventNature, error) {
	if err := ctx.Err(); err != nil {
		return model.NatureUnknown, fmt.Errorf("%w: %w", ErrLookupCancelled, err)
	}
	if event.Nature != "" && event.Nature != model.NatureUnknown {
		return event.Nature, nil
	}
	switch {
	case event.HasMarker("poyaday"), event.HasMarker("meditation"), event.HasMarker("dana"):
		return model.NatureReligious, nil
	case event.HasMarker("vesak"), event.HasMarker("avurudu"), event.HasMarker("kandyan"):
		return model.NatureCultural, nil
	default:
		return model.NatureUnknown, nil
	}
}

// GetEventAppropriateness scores how suitable the event is on the given
// date. Religious and family natures gain on Poyadays; secular natures
// lose heavily.
func (c *InMemoryCalendar) GetEventAppropriateness(ctx context.Context, event model.Event, date time.Time) (float64, error) {
	base, err := c.baseAppropriateness(ctx, event)
	if err != nil {
		return 0, err
	}
	poya, err := c.IsPoyaday(ctx, date)
	if err != nil {
		return 0, err
	}
	if poya {
		switch event.Nature {
		case model.NatureReligious, model.NatureFamily:
			base += poyadayReligiousBoost
		case model.NatureSecular, model.NatureProfessional:
			base -= poyadaySecularPenalty
		}
	}
	return clamp01(base), nil
}

// CalculateAppropriateness scores how suitable the event is for a
// cultural background, independent of date.
func (c *InMemoryCalendar) CalculateAppropriateness(ctx context.Context, event model.Event, culturalBackground string) (float64, error) {
	base, err := c.baseAppropriateness(ctx, event)
	if err != nil {
		return 0, err
	}
	// Background-aligned markers raise the score slightly.
	bg := strings.ToLower(culturalBackground)
	for _, m := range event.CulturalMarkers {
		if bg != "" && strings.Contains(bg, strings.ToLower(m)) {
			base += festivalAlignmentBoost
			break
		}
	}
	return clamp01(base), nil
}

// ValidateEventAgainstCalendar checks an event's schedule and nature
// against the calendar and suggests corrections when it clashes.
func (c *InMemoryCalendar) ValidateEventAgainstCalendar(ctx context.Context, event model.Event) (Validation, error) {
	if event.Start.IsZero() {
		return Validation{
			IsValid:     false,
			Reason:      "event has no start time",
			Suggestions: []string{"set a schedule before publishing"},
		}, nil
	}
	score, err := c.GetEventAppropriateness(ctx, event, event.Start)
	if err != nil {
		return Validation{}, err
	}
	poya, err := c.IsPoyaday(ctx, event.Start)
	if err != nil {
		return Validation{}, err
	}
	if poya && score < defaultAppropriateness {
		return Validation{
			IsValid: false,
			Reason:  fmt.Sprintf("%s event scheduled on a Poyaday", event.Nature),
			Suggestions: []string{
				"move the event off the observance day",
				"reframe the programme around the observance",
			},
		}, nil
	}
	return Validation{IsValid: true}, nil
}

func (c *InMemoryCalendar) baseAppropriateness(ctx context.Context, event model.Event) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLookupCancelled, err)
	}
	if pinned, ok := c.appropriateness[event.ID]; ok {
		return pinned, nil
	}
	nature, err := c.ClassifyEventNature(ctx, event)
	if err != nil {
		return 0, err
	}
	if base, ok := c.natureBaseline[nature]; ok {
		return base, nil
	}
	return defaultAppropriateness, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
