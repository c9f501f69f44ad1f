// Package fixtures generates deterministic sample events, profiles and
// seeded providers for tests and the demo binary.
package fixtures

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/calendar"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/geo"
)

// defaultSeed keeps generated fixtures reproducible across runs.
const defaultSeed = 42

// Toronto-area reference coordinates used by the fixtures.
var (
	homeScarborough = model.Coordinates{Latitude: 43.7764, Longitude: -79.2318}
	templeMarkham   = model.Coordinates{Latitude: 43.8561, Longitude: -79.3370}
	hallMississauga = model.Coordinates{Latitude: 43.5890, Longitude: -79.6441}
	centreDowntown  = model.Coordinates{Latitude: 43.6532, Longitude: -79.3832}
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random source seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible fixtures
	}
}

// WithBaseDate anchors generated schedules around the given date.
func WithBaseDate(base time.Time) Option {
	return func(g *Generator) { g.base = base }
}

// Generator produces sample domain objects.
type Generator struct {
	rng  *rand.Rand
	base time.Time
}

// NewGenerator creates a Generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng:  rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // deterministic seed for reproducible fixtures
		base: time.Date(2025, time.May, 10, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var sampleTitles = []struct {
	title   string
	nature  model.EventNature
	markers []string
}{
	{"Vesak Lantern Making", model.NatureCultural, []string{"vesak"}},
	{"Poyaday Meditation Sit", model.NatureReligious, []string{"poyaday", "meditation"}},
	{"Sinhala New Year Games", model.NatureCultural, []string{"avurudu"}},
	{"Kandyan Dance Workshop", model.NatureCultural, []string{"kandyan"}},
	{"Tamil Language Circle", model.NatureEducational, nil},
	{"Cricket Networking Night", model.NatureProfessional, nil},
	{"Temple Dana Service", model.NatureReligious, []string{"dana"}},
	{"Family Beach Day", model.NatureFamily, nil},
	{"Craft Beer Social", model.NatureSecular, nil},
}

var sampleCoords = []model.Coordinates{templeMarkham, hallMississauga, centreDowntown}

// Events generates n sample events with unique IDs, cycling through the
// sample catalogue.
func (g *Generator) Events(n int) []model.Event {
	events := make([]model.Event, n)
	for i := 0; i < n; i++ {
		tpl := sampleTitles[i%len(sampleTitles)]
		coords := sampleCoords[i%len(sampleCoords)]
		start := g.base.AddDate(0, 0, g.rng.Intn(14)).Add(time.Duration(9+g.rng.Intn(10)) * time.Hour)
		events[i] = model.Event{
			ID:     uuid.New().String(),
			Title:  fmt.Sprintf("%s #%d", tpl.title, i+1),
			Nature: tpl.nature,
			Start:  start,
			End:    start.Add(2 * time.Hour),
			Locations: []model.Location{{
				Name:        "Greater Toronto",
				Coordinates: &model.Coordinates{Latitude: coords.Latitude, Longitude: coords.Longitude},
			}},
			Capacity:        40 + g.rng.Intn(160),
			Languages:       []string{"Sinhala", "English"},
			TransportModes:  []model.TransportMode{model.TransportCar, model.TransportTransit},
			Suitability:     model.SuitabilityGeneral,
			RoleDemand:      model.RoleCasual,
			CulturalMarkers: tpl.markers,
		}
	}
	return events
}

// Profile generates a representative diaspora user profile.
func (g *Generator) Profile(id string) model.UserProfile {
	return model.UserProfile{
		ID:                 id,
		CulturalBackground: "Sinhala Buddhist",
		Home: model.Location{
			Name:        "Greater Toronto",
			Coordinates: &model.Coordinates{Latitude: homeScarborough.Latitude, Longitude: homeScarborough.Longitude},
		},
		Age: 36,
		Family: model.FamilyProfile{
			HasChildren:  true,
			ChildrenAges: []int{6, 9},
		},
		Languages: model.LanguagePreferences{
			Primary:              "Sinhala",
			Secondary:            []string{"English"},
			MultilingualAffinity: 0.8,
		},
		Transport: model.TransportPreferences{
			Preferred: []model.TransportMode{model.TransportCar},
		},
		Involvement: model.InvolvementProfile{
			Level:       model.InvolvementVolunteer,
			Commitment:  0.7,
			Memberships: 2,
		},
		MaxTravelKM: 60,
		Sensitivity: model.SensitivityHigh,
		History: []model.AttendanceRecord{
			{EventID: "past-1", Nature: model.NatureReligious, Satisfaction: 0.9, Date: g.base.AddDate(0, -2, 0)},
			{EventID: "past-2", Nature: model.NatureCultural, Satisfaction: 0.85, Date: g.base.AddDate(0, -1, 0)},
			{EventID: "past-3", Nature: model.NatureSecular, Satisfaction: 0.3, Date: g.base.AddDate(0, -6, 0)},
		},
		Patterns: []model.PreferencePattern{
			{Nature: model.NatureReligious, Weight: 0.9, Confidence: 0.8},
			{Nature: model.NatureCultural, Weight: 0.85, Confidence: 0.7},
		},
		TimeSlots: []model.TimeSlotPreference{
			{Slot: model.TimeSlot{Day: time.Saturday, StartHour: 9, EndHour: 18}, Weight: 0.9},
			{Slot: model.TimeSlot{Day: time.Sunday, StartHour: 9, EndHour: 14}, Weight: 0.8},
		},
		CategoryPreferences: map[model.EventNature]float64{
			model.NatureReligious: 0.9,
			model.NatureCultural:  0.85,
			model.NatureFamily:    0.8,
		},
	}
}

// Calendar builds an in-memory cultural calendar seeded around the
// generator's base date: the base date is a Poyaday and a Vesak period
// surrounds it.
func (g *Generator) Calendar() *calendar.InMemoryCalendar {
	return calendar.NewInMemoryCalendar(
		calendar.WithPoyadays(g.base),
		calendar.WithFestivalPeriod(calendar.FestivalPeriod{
			Name:  "Vesak",
			Start: g.base.AddDate(0, 0, -3),
			End:   g.base.AddDate(0, 0, 11),
		}),
		calendar.WithSignificantDates(calendar.SignificantDate{
			Name:         "Vesak Full Moon Poya",
			Date:         g.base,
			Significance: calendar.SignificanceMajor,
		}),
	)
}

// Proximity builds an in-memory proximity service seeded with the
// Greater Toronto diaspora region.
func (g *Generator) Proximity() *geo.InMemoryProximity {
	return geo.NewInMemoryProximity(
		geo.WithDiasporaRegion("Greater Toronto", 0.8),
		geo.WithRegionalPreferences(geo.RegionalPreferences{
			Region:           "Greater Toronto",
			PreferredNatures: []model.EventNature{model.NatureReligious, model.NatureCultural},
			PreferredModes:   []model.TransportMode{model.TransportCar, model.TransportTransit},
		}),
	)
}
