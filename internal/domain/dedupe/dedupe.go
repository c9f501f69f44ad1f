// Package dedupe suppresses duplicate candidate events before scoring.
//
// The engine may receive the same event several times in one candidate
// set (merged feeds, retried submissions). Dropping duplicates is an
// explicit, reported filtering step rather than silent reordering.
package dedupe

import (
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
)

// Deduper records seen event IDs within one request.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if
	// not. Returns true if id was already seen.
	SeenAndRecord(id string) bool
}

// seenSet is the per-request Deduper. Requests are single-owner until
// fan-out begins, so no locking is needed.
type seenSet map[string]struct{}

// NewSeenSet returns an empty per-request Deduper.
func NewSeenSet() Deduper {
	return make(seenSet)
}

func (s seenSet) SeenAndRecord(id string) bool {
	if _, ok := s[id]; ok {
		return true
	}
	s[id] = struct{}{}
	return false
}

// Events returns the candidate set with duplicate IDs removed, keeping
// first occurrences in order, plus the IDs that were dropped.
func Events(events []model.Event) (unique []model.Event, dropped []string) {
	seen := NewSeenSet()
	unique = make([]model.Event, 0, len(events))
	for _, ev := range events {
		if seen.SeenAndRecord(ev.ID) {
			dropped = append(dropped, ev.ID)
			continue
		}
		unique = append(unique, ev)
	}
	return unique, dropped
}
