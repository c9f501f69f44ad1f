package prefs

import (
	"strings"
	"time"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
)

// Pure compatibility helpers. Each returns a bounded score in [0,1] and
// never fails: missing data degrades to the neutral midpoint.

// NeutralCompatibility is returned when there is no signal either way.
const NeutralCompatibility = 0.5

// TimeCompatibility scores an event start against a user's learned
// time-slot preference table. Unmatched slots fall back to the neutral
// default rather than zero.
func TimeCompatibility(profile model.UserProfile, start time.Time) float64 {
	if start.IsZero() || len(profile.TimeSlots) == 0 {
		return NeutralCompatibility
	}
	best := -1.0
	for _, p := range profile.TimeSlots {
		if p.Slot.Contains(start) && p.Weight > best {
			best = p.Weight
		}
	}
	if best < 0 {
		return NeutralCompatibility
	}
	return types.Clamp01(best)
}

// FamilyCompatibility scores event suitability against household
// composition. Family-oriented events score high for users with
// children; adult-only events score low for them.
func FamilyCompatibility(profile model.UserProfile, event model.Event) float64 {
	switch event.Suitability {
	case model.SuitabilityFamily:
		if profile.Family.HasChildren {
			return 0.95
		}
		return 0.6
	case model.SuitabilityAdultsOnly:
		if profile.Family.HasChildren {
			return 0.1
		}
		return 0.7
	default:
		return NeutralCompatibility + 0.1
	}
}

// AgeCompatibility scores the user's age against an event's minimum age
// and broad audience fit.
func AgeCompatibility(profile model.UserProfile, event model.Event) float64 {
	if profile.Age <= 0 {
		return NeutralCompatibility
	}
	if event.MinAge > 0 && profile.Age < event.MinAge {
		return 0.0
	}
	if event.Suitability == model.SuitabilityFamily && profile.Family.HasChildren {
		return 0.9
	}
	return 0.7
}

// LanguageCompatibility scores event languages against user language
// preferences, boosted by multilingual affinity when several preferred
// languages are offered.
func LanguageCompatibility(profile model.UserProfile, event model.Event) float64 {
	if len(event.Languages) == 0 {
		return NeutralCompatibility
	}
	matches := 0
	primary := false
	for _, lang := range event.Languages {
		if equalLang(lang, profile.Languages.Primary) {
			primary = true
			matches++
			continue
		}
		for _, sec := range profile.Languages.Secondary {
			if equalLang(lang, sec) {
				matches++
				break
			}
		}
	}
	if matches == 0 {
		return 0.15
	}
	score := 0.6
	if primary {
		score = 0.85
	}
	if matches > 1 {
		score += 0.15 * types.Clamp01(profile.Languages.MultilingualAffinity)
	}
	return types.Clamp01(score)
}

// InvolvementCompatibility scores event role demand against the user's
// community-involvement profile.
func InvolvementCompatibility(profile model.UserProfile, event model.Event) float64 {
	demand := event.RoleDemand
	if demand == "" {
		demand = model.RoleCasual
	}
	level := profile.Involvement.Level
	if level == "" {
		level = model.InvolvementCasual
	}
	gap := involvementRank(level) - roleRank(demand)
	switch {
	case gap == 0:
		return 0.9
	case gap > 0:
		// Overqualified users still fit, slightly less well per step.
		return types.Clamp01(0.9 - 0.1*float64(gap))
	default:
		// Underqualified users fit poorly, worse per step.
		return types.Clamp01(0.9 + 0.3*float64(gap))
	}
}

func involvementRank(l model.InvolvementLevel) int {
	switch l {
	case model.InvolvementLeader:
		return 3
	case model.InvolvementVolunteer:
		return 2
	case model.InvolvementMember:
		return 1
	default:
		return 0
	}
}

func roleRank(r model.RoleDemand) int {
	switch r {
	case model.RoleLeadership:
		return 3
	case model.RoleVolunteer:
		return 2
	case model.RoleMembership:
		return 1
	default:
		return 0
	}
}

func equalLang(a, b string) bool {
	return b != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
