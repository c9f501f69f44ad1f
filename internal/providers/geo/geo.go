// Package geo defines the geographic proximity provider contract and an
// in-memory reference implementation backed by haversine distance and
// seeded regional tables.
package geo

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
)

// Cluster is a group of events within a shared radius of a center point.
type Cluster struct {
	Center   model.Coordinates
	EventIDs []string
	Density  float64 // [0,1], community density at the center
}

// RegionalPreferences describe what a region's diaspora community tends
// to favor.
type RegionalPreferences struct {
	Region           string
	PreferredNatures []model.EventNature
	PreferredModes   []model.TransportMode
}

// EdgeCaseResult is the outcome of handling an event with missing or
// irregular location data.
type EdgeCaseResult struct {
	Handled bool
	Score   float64 // fallback proximity score in [0,1]
	Reason  string
}

// Service resolves distances, cluster density, regional matches,
// transportation accessibility and multi-location proximity.
type Service interface {
	CalculateDistance(ctx context.Context, a, b model.Coordinates) (float64, error)
	IsDiasporaLocation(ctx context.Context, loc model.Location) (bool, error)
	GetCommunityDensity(ctx context.Context, loc model.Location) (float64, error)
	AnalyzeCommunityCluster(ctx context.Context, home model.Location, events []model.Event) ([]Cluster, error)
	GetRegionalPreferences(ctx context.Context, loc model.Location) (RegionalPreferences, error)
	CalculateRegionalMatch(ctx context.Context, event model.Event, prefs RegionalPreferences) (float64, error)
	CalculateTransportationAccessibility(ctx context.Context, event model.Event, tp model.TransportPreferences) (float64, error)
	CalculateMultiLocationProximity(ctx context.Context, home model.Location, locs []model.Location) (float64, error)
	CalculateProximityScore(ctx context.Context, proximityKM float64) (float64, error)
	HandleLocationEdgeCase(ctx context.Context, home model.Location, event model.Event) (EdgeCaseResult, error)
	IsBorderLocation(ctx context.Context, loc model.Location) (bool, error)
}

const (
	earthRadiusKM = 6371.0

	// proximityHalfDistanceKM is the distance at which the proximity
	// score decays to 0.5.
	proximityHalfDistanceKM = 25.0

	// clusterRadiusKM groups events into one community cluster.
	clusterRadiusKM = 15.0

	// fallbackProximityScore is used for events whose location cannot
	// be resolved.
	fallbackProximityScore = 0.5
)

// Option applies a configuration option to the InMemoryProximity service.
type Option func(*InMemoryProximity)

// WithDiasporaRegion registers a named region as a diaspora community
// hub with a density ratio in [0,1].
func WithDiasporaRegion(name string, density float64) Option {
	return func(s *InMemoryProximity) {
		s.density[strings.ToLower(name)] = density
	}
}

// WithRegionalPreferences registers preferences for a named region.
func WithRegionalPreferences(p RegionalPreferences) Option {
	return func(s *InMemoryProximity) {
		s.regional[strings.ToLower(p.Region)] = p
	}
}

// WithBorderRegion marks a named region as sitting on a service border,
// where distance data is unreliable.
func WithBorderRegion(name string) Option {
	return func(s *InMemoryProximity) {
		s.borders[strings.ToLower(name)] = struct{}{}
	}
}

// InMemoryProximity implements Service from seeded regional tables and
// haversine math. Deterministic for identical seeds and inputs.
type InMemoryProximity struct {
	mu       sync.RWMutex
	density  map[string]float64
	regional map[string]RegionalPreferences
	borders  map[string]struct{}
}

// NewInMemoryProximity creates a proximity service with options.
func NewInMemoryProximity(opts ...Option) *InMemoryProximity {
	s := &InMemoryProximity{
		density:  make(map[string]float64),
		regional: make(map[string]RegionalPreferences),
		borders:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CalculateDistance returns the great-circle distance in kilometers.
func (s *InMemoryProximity) CalculateDistance(ctx context.Context, a, b model.Coordinates) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("distance lookup cancelled: %w", err)
	}
	return haversineKM(a, b), nil
}

// IsDiasporaLocation reports whether the location's region is a
// registered diaspora hub.
func (s *InMemoryProximity) IsDiasporaLocation(ctx context.Context, loc model.Location) (bool, error) {
	d, err := s.GetCommunityDensity(ctx, loc)
	if err != nil {
		return false, err
	}
	return d > 0, nil
}

// GetCommunityDensity returns the diaspora community density ratio for
// the location's region, zero for unknown regions.
func (s *InMemoryProximity) GetCommunityDensity(ctx context.Context, loc model.Location) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("density lookup cancelled: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.density[regionKey(loc)]; ok {
		return d, nil
	}
	return 0, nil
}

// AnalyzeCommunityCluster groups events into clusters around venues
// within clusterRadiusKM of each other, ordered by descending size.
func (s *InMemoryProximity) AnalyzeCommunityCluster(ctx context.Context, home model.Location, events []model.Event) ([]Cluster, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cluster analysis cancelled: %w", err)
	}
	var clusters []Cluster
	for _, ev := range events {
		loc, ok := ev.PrimaryLocation()
		if !ok || !loc.HasCoordinates() {
			continue
		}
		placed := false
		for i := range clusters {
			if haversineKM(clusters[i].Center, *loc.Coordinates) <= clusterRadiusKM {
				clusters[i].EventIDs = append(clusters[i].EventIDs, ev.ID)
				placed = true
				break
			}
		}
		if !placed {
			density, err := s.GetCommunityDensity(ctx, loc)
			if err != nil {
				return nil, err
			}
			clusters = append(clusters, Cluster{
				Center:   *loc.Coordinates,
				EventIDs: []string{ev.ID},
				Density:  density,
			})
		}
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i].EventIDs) > len(clusters[j].EventIDs)
	})
	return clusters, nil
}

// GetRegionalPreferences returns the preferences registered for the
// location's region, or an empty set for unknown regions.
func (s *InMemoryProximity) GetRegionalPreferences(ctx context.Context, loc model.Location) (RegionalPreferences, error) {
	if err := ctx.Err(); err != nil {
		return RegionalPreferences{}, fmt.Errorf("regional lookup cancelled: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.regional[regionKey(loc)]; ok {
		return p, nil
	}
	return RegionalPreferences{Region: regionKey(loc)}, nil
}

// CalculateRegionalMatch scores how well an event fits a region's
// preferences.
func (s *InMemoryProximity) CalculateRegionalMatch(ctx context.Context, event model.Event, prefs RegionalPreferences) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("regional match cancelled: %w", err)
	}
	if len(prefs.PreferredNatures) == 0 {
		return fallbackProximityScore, nil
	}
	for _, n := range prefs.PreferredNatures {
		if n == event.Nature {
			return 0.9, nil
		}
	}
	return 0.3, nil
}

// CalculateTransportationAccessibility scores the overlap between the
// event's supported transport modes and the user's preferences. Avoided
// modes count against the score; accessibility needs require transit or
// car support.
func (s *InMemoryProximity) CalculateTransportationAccessibility(ctx context.Context, event model.Event, tp model.TransportPreferences) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("accessibility lookup cancelled: %w", err)
	}
	if len(event.TransportModes) == 0 {
		return fallbackProximityScore, nil
	}
	supported := make(map[model.TransportMode]struct{}, len(event.TransportModes))
	for _, m := range event.TransportModes {
		supported[m] = struct{}{}
	}
	score := 0.4
	for _, m := range tp.Preferred {
		if _, ok := supported[m]; ok {
			score += 0.25
		}
	}
	onlyAvoided := len(tp.Avoided) > 0
	for _, m := range event.TransportModes {
		avoided := false
		for _, a := range tp.Avoided {
			if m == a {
				avoided = true
				break
			}
		}
		if !avoided {
			onlyAvoided = false
		}
	}
	if onlyAvoided {
		score = 0.1
	}
	if len(tp.AccessibilityNeeds) > 0 {
		_, transit := supported[model.TransportTransit]
		_, car := supported[model.TransportCar]
		if !transit && !car {
			score -= 0.3
		}
	}
	return clamp01(score), nil
}

// CalculateMultiLocationProximity returns the distance in kilometers
// from home to the centroid of the given locations.
func (s *InMemoryProximity) CalculateMultiLocationProximity(ctx context.Context, home model.Location, locs []model.Location) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("proximity lookup cancelled: %w", err)
	}
	if !home.HasCoordinates() {
		return 0, fmt.Errorf("%w: home has no coordinates", ErrMissingLocation)
	}
	var lat, lng float64
	n := 0
	for _, l := range locs {
		if l.HasCoordinates() {
			lat += l.Coordinates.Latitude
			lng += l.Coordinates.Longitude
			n++
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: no locatable venues", ErrMissingLocation)
	}
	centroid := model.Coordinates{Latitude: lat / float64(n), Longitude: lng / float64(n)}
	return haversineKM(*home.Coordinates, centroid), nil
}

// CalculateProximityScore maps a distance in kilometers onto [0,1] with
// exponential decay: 0km scores 1.0, proximityHalfDistanceKM scores 0.5.
func (s *InMemoryProximity) CalculateProximityScore(ctx context.Context, proximityKM float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("proximity score cancelled: %w", err)
	}
	if proximityKM < 0 || math.IsNaN(proximityKM) {
		return fallbackProximityScore, nil
	}
	return math.Exp2(-proximityKM / proximityHalfDistanceKM), nil
}

// HandleLocationEdgeCase resolves events with missing or border-region
// locations to a usable fallback score instead of an error.
func (s *InMemoryProximity) HandleLocationEdgeCase(ctx context.Context, home model.Location, event model.Event) (EdgeCaseResult, error) {
	if err := ctx.Err(); err != nil {
		return EdgeCaseResult{}, fmt.Errorf("edge case handling cancelled: %w", err)
	}
	loc, ok := event.PrimaryLocation()
	switch {
	case !ok:
		return EdgeCaseResult{Handled: true, Score: fallbackProximityScore, Reason: "event has no location data"}, nil
	case !loc.HasCoordinates():
		return EdgeCaseResult{Handled: true, Score: fallbackProximityScore, Reason: "event location has no coordinates"}, nil
	}
	border, err := s.IsBorderLocation(ctx, loc)
	if err != nil {
		return EdgeCaseResult{}, err
	}
	if border {
		// Border regions keep their computed distance but callers are
		// told the value is low-confidence.
		return EdgeCaseResult{Handled: true, Score: fallbackProximityScore, Reason: "venue sits in a border region"}, nil
	}
	return EdgeCaseResult{Handled: false}, nil
}

// IsBorderLocation reports whether the location's region was registered
// as a border region.
func (s *InMemoryProximity) IsBorderLocation(ctx context.Context, loc model.Location) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("border lookup cancelled: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.borders[regionKey(loc)]
	return ok, nil
}

func regionKey(loc model.Location) string {
	if loc.Name != "" {
		return strings.ToLower(loc.Name)
	}
	return strings.ToLower(loc.Address)
}

func haversineKM(a, b model.Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
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
