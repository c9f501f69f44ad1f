// Package model contains domain models passed between layers.
//
// All types here are read-only inputs to the recommendation pipeline:
// the engine never mutates an Event or UserProfile after receiving it.
package model

import "time"

// EventNature classifies an event for cultural scoring.
type EventNature string

// Event natures recognized by the cultural calendar.
const (
	NatureReligious    EventNature = "religious"
	NatureCultural     EventNature = "cultural"
	NatureProfessional EventNature = "professional"
	NatureSecular      EventNature = "secular"
	NatureFamily       EventNature = "family"
	NatureEducational  EventNature = "educational"
	NatureUnknown      EventNature = "unknown"
)

// TransportMode identifies a way of reaching an event.
type TransportMode string

// Supported transport modes.
const (
	TransportCar     TransportMode = "car"
	TransportTransit TransportMode = "public_transit"
	TransportWalking TransportMode = "walking"
	TransportCycling TransportMode = "cycling"
	TransportRide    TransportMode = "rideshare"
)

// FamilySuitability describes the audience an event is aimed at.
type FamilySuitability string

// Family suitability classes.
const (
	SuitabilityGeneral    FamilySuitability = "general"
	SuitabilityFamily     FamilySuitability = "family_friendly"
	SuitabilityAdultsOnly FamilySuitability = "adults_only"
)

// RoleDemand describes the kind of participation an event asks for.
type RoleDemand string

// Role demand classes.
const (
	RoleCasual     RoleDemand = "casual"
	RoleMembership RoleDemand = "membership"
	RoleVolunteer  RoleDemand = "volunteer"
	RoleLeadership RoleDemand = "leadership"
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Location is a place an event is held at or a user lives in.
// Coordinates is nil when only a textual address is known, or when
// location data is missing entirely.
type Location struct {
	Name        string
	Address     string
	Coordinates *Coordinates
}

// HasCoordinates reports whether the location carries usable coordinates.
func (l Location) HasCoordinates() bool {
	return l.Coordinates != nil
}

// OverlapDefaultDuration is assumed for events without an end time when
// detecting schedule overlaps.
const OverlapDefaultDuration = 2 * time.Hour

// Event represents a candidate community event. Immutable once passed
// into the engine.
type Event struct {
	ID          string
	Title       string
	Description string
	Nature      EventNature

	// Schedule. End may be zero when only a start time is known; the
	// pipeline then assumes a default duration for overlap detection.
	Start time.Time
	End   time.Time

	// Locations may be empty (missing data), a single venue, or several
	// venues for multi-site events.
	Locations []Location

	Capacity       int
	Languages      []string
	TransportModes []TransportMode
	Suitability    FamilySuitability
	MinAge         int
	RoleDemand     RoleDemand

	// CulturalMarkers are optional significance tags, e.g. "poyaday",
	// "vesak", "meditation".
	CulturalMarkers []string

	// Priority is an optional explicit priority tag used by conflict
	// resolution; zero means no explicit priority.
	Priority int
}

// PrimaryLocation returns the first listed location, or a zero Location
// when the event carries no location data.
func (e Event) PrimaryLocation() (Location, bool) {
	if len(e.Locations) == 0 {
		return Location{}, false
	}
	return e.Locations[0], true
}

// HasMarker reports whether the event carries the given cultural marker.
func (e Event) HasMarker(marker string) bool {
	for _, m := range e.CulturalMarkers {
		if m == marker {
			return true
		}
	}
	return false
}

// EffectiveEnd returns the event end, falling back to a default duration
// after the start when no end is set.
func (e Event) EffectiveEnd() time.Time {
	if !e.End.IsZero() {
		return e.End
	}
	return e.Start.Add(OverlapDefaultDuration)
}

// Overlaps reports whether two events intersect in time.
func (e Event) Overlaps(other Event) bool {
	return e.Start.Before(other.EffectiveEnd()) && other.Start.Before(e.EffectiveEnd())
}
