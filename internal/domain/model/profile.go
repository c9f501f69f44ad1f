package model

import "time"

// SensitivityLevel expresses how strictly a user wants cultural
// appropriateness enforced.
type SensitivityLevel string

// Sensitivity levels, from most permissive to most strict.
const (
	SensitivityLow      SensitivityLevel = "low"
	SensitivityMedium   SensitivityLevel = "medium"
	SensitivityHigh     SensitivityLevel = "high"
	SensitivityVeryHigh SensitivityLevel = "very_high"
)

// AppropriatenessFloor returns the minimum cultural appropriateness an
// event must reach to be recommendable at this sensitivity level.
func (s SensitivityLevel) AppropriatenessFloor() float64 {
	switch s {
	case SensitivityVeryHigh:
		return 0.60
	case SensitivityHigh:
		return 0.40
	case SensitivityMedium:
		return 0.25
	default:
		return 0.0
	}
}

// InvolvementLevel describes how engaged a user is in the community.
type InvolvementLevel string

// Involvement levels, from least to most engaged.
const (
	InvolvementCasual    InvolvementLevel = "casual"
	InvolvementMember    InvolvementLevel = "member"
	InvolvementVolunteer InvolvementLevel = "volunteer"
	InvolvementLeader    InvolvementLevel = "leader"
)

// AttendanceRecord is one past event a user attended.
type AttendanceRecord struct {
	EventID      string
	Nature       EventNature
	Satisfaction float64 // [0,1]
	Date         time.Time
}

// PreferencePattern is a learned affinity for an event nature, with a
// confidence factor produced by the preference learning pipeline.
type PreferencePattern struct {
	Nature     EventNature
	Weight     float64 // [0,1], strength of the affinity
	Confidence float64 // [0,1], how sure the learner is
}

// FamilyProfile captures household composition relevant to event choice.
type FamilyProfile struct {
	HasChildren  bool
	ChildrenAges []int
}

// LanguagePreferences capture the languages a user is comfortable with.
type LanguagePreferences struct {
	Primary   string
	Secondary []string

	// MultilingualAffinity in [0,1]: how much the user values events
	// offered in several of their languages at once.
	MultilingualAffinity float64
}

// TransportPreferences capture how a user prefers to travel.
type TransportPreferences struct {
	Preferred          []TransportMode
	Avoided            []TransportMode
	AccessibilityNeeds []string
}

// InvolvementProfile captures community engagement depth.
type InvolvementProfile struct {
	Level           InvolvementLevel
	VolunteerHours  float64
	LeadershipRoles int
	Memberships     int
	Commitment      float64 // [0,1]
}

// TimeSlot is a recurring weekly window.
type TimeSlot struct {
	Day       time.Weekday
	StartHour int // inclusive, 0-23
	EndHour   int // exclusive, 1-24
}

// Contains reports whether t falls inside the slot.
func (s TimeSlot) Contains(t time.Time) bool {
	if t.Weekday() != s.Day {
		return false
	}
	h := t.Hour()
	return h >= s.StartHour && h < s.EndHour
}

// TimeSlotPreference weights a recurring window by learned preference.
type TimeSlotPreference struct {
	Slot   TimeSlot
	Weight float64 // [0,1]
}

// UserProfile is the read-only user input to the engine.
type UserProfile struct {
	ID                 string
	CulturalBackground string
	Home               Location
	Age                int

	Family      FamilyProfile
	Languages   LanguagePreferences
	Transport   TransportPreferences
	Involvement InvolvementProfile

	// MaxTravelKM is the hard travel-distance ceiling; events farther
	// away are excluded outright, not down-scored. Zero means no limit.
	MaxTravelKM float64

	Sensitivity SensitivityLevel

	History   []AttendanceRecord
	Patterns  []PreferencePattern
	TimeSlots []TimeSlotPreference

	// CategoryPreferences holds declared (not learned) per-nature
	// affinities in [0,1].
	CategoryPreferences map[EventNature]float64
}
