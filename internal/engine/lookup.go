package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/score"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/geo"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/pkg/logger"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/pkg/metrics"
)

// provider runs one upstream lookup under the configured timeout. A
// failed or timed-out lookup returns false and is recorded; the affected
// criterion then degrades to its fallback score instead of failing the
// ranking. Parent-context cancellation is left for the caller to check.
func (e *Engine) provider(ctx context.Context, name string, fn func(ctx context.Context) error) bool {
	start := time.Now()
	pctx, cancel := context.WithTimeout(ctx, e.providerTimeout)
	defer cancel()

	err := fn(pctx)
	metrics.ObserveProviderLatency(name, float64(time.Since(start).Milliseconds()))
	if err == nil {
		return true
	}
	if ctx.Err() != nil {
		return false
	}
	metrics.RecordProviderError(name)
	e.log.Warn(ctx, "provider lookup degraded to fallback",
		logger.String("provider", name),
		logger.Error(err),
	)
	return false
}

// buildLookup batches every provider lookup the calculators will need,
// once per request. Per-user data is fetched once; per-event data is
// fetched once per event, not once per event per criterion.
func (e *Engine) buildLookup(ctx context.Context, profile model.UserProfile, events []model.Event, req opRequest) (*score.Lookup, error) {
	date := req.date
	if date.IsZero() {
		date = e.now()
	}
	look := score.NewLookup(date)

	e.provider(ctx, "calendar", func(pctx context.Context) error {
		poya, err := e.calendar.IsPoyaday(pctx, date)
		if err != nil {
			return err
		}
		look.Poyaday = poya
		return nil
	})

	if req.festival != "" {
		e.provider(ctx, "calendar", func(pctx context.Context) error {
			period, err := e.calendar.GetFestivalPeriod(pctx, req.festival, festivalYear(events, date))
			if err != nil {
				return err
			}
			look.Festival = &period
			return nil
		})
	}

	var regional geo.RegionalPreferences
	haveRegional := e.provider(ctx, "geo", func(pctx context.Context) error {
		p, err := e.geo.GetRegionalPreferences(pctx, profile.Home)
		if err != nil {
			return err
		}
		regional = p
		return nil
	})

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		e.lookupCalendar(ctx, look, profile, ev, date)
		e.lookupGeo(ctx, look, profile, ev, regional, haveRegional)
	}

	if req.clusterAnalysis {
		e.lookupClusters(ctx, look, profile, events)
	}

	return look, nil
}

func (e *Engine) lookupCalendar(ctx context.Context, look *score.Lookup, profile model.UserProfile, ev model.Event, date time.Time) {
	e.provider(ctx, "calendar", func(pctx context.Context) error {
		nature, err := e.calendar.ClassifyEventNature(pctx, ev)
		if err != nil {
			return err
		}
		look.Natures[ev.ID] = nature
		return nil
	})

	// Appropriateness blends the background-specific score with the
	// date-specific one so both the user's context and the calendar
	// context carry equal weight.
	e.provider(ctx, "calendar", func(pctx context.Context) error {
		byBackground, err := e.calendar.CalculateAppropriateness(pctx, ev, profile.CulturalBackground)
		if err != nil {
			return err
		}
		byDate, err := e.calendar.GetEventAppropriateness(pctx, ev, date)
		if err != nil {
			return err
		}
		look.Appropriateness[ev.ID] = (byBackground + byDate) / 2
		return nil
	})

	if look.Festival != nil {
		e.provider(ctx, "calendar", func(pctx context.Context) error {
			optimal, err := e.calendar.IsOptimalFestivalTiming(pctx, ev, *look.Festival)
			if err != nil {
				return err
			}
			look.OptimalTiming[ev.ID] = optimal
			return nil
		})
	}
}

func (e *Engine) lookupGeo(ctx context.Context, look *score.Lookup, profile model.UserProfile, ev model.Event, regional geo.RegionalPreferences, haveRegional bool) {
	loc, hasLoc := ev.PrimaryLocation()

	if hasLoc && loc.HasCoordinates() && profile.Home.HasCoordinates() {
		e.provider(ctx, "geo", func(pctx context.Context) error {
			dist, err := e.geo.CalculateDistance(pctx, *profile.Home.Coordinates, *loc.Coordinates)
			if err != nil {
				return err
			}
			look.DistanceKM[ev.ID] = dist
			return nil
		})
		e.provider(ctx, "geo", func(pctx context.Context) error {
			proximity, err := e.geo.CalculateMultiLocationProximity(pctx, profile.Home, ev.Locations)
			if err != nil {
				return err
			}
			s, err := e.geo.CalculateProximityScore(pctx, proximity)
			if err != nil {
				return err
			}
			look.ProximityScore[ev.ID] = s
			return nil
		})
	}

	if hasLoc {
		e.provider(ctx, "geo", func(pctx context.Context) error {
			diaspora, err := e.geo.IsDiasporaLocation(pctx, loc)
			if err != nil {
				return err
			}
			density, err := e.geo.GetCommunityDensity(pctx, loc)
			if err != nil {
				return err
			}
			look.Diaspora[ev.ID] = diaspora
			look.Density[ev.ID] = density
			return nil
		})
	}

	if haveRegional {
		e.provider(ctx, "geo", func(pctx context.Context) error {
			match, err := e.geo.CalculateRegionalMatch(pctx, ev, regional)
			if err != nil {
				return err
			}
			look.RegionalMatch[ev.ID] = match
			return nil
		})
	}

	e.provider(ctx, "geo", func(pctx context.Context) error {
		access, err := e.geo.CalculateTransportationAccessibility(pctx, ev, profile.Transport)
		if err != nil {
			return err
		}
		look.Accessibility[ev.ID] = access
		return nil
	})
}

// lookupClusters lifts density and diaspora flags for events that sit in
// multi-event community clusters.
func (e *Engine) lookupClusters(ctx context.Context, look *score.Lookup, profile model.UserProfile, events []model.Event) {
	e.provider(ctx, "geo", func(pctx context.Context) error {
		clusters, err := e.geo.AnalyzeCommunityCluster(pctx, profile.Home, events)
		if err != nil {
			return err
		}
		for _, cluster := range clusters {
			if len(cluster.EventIDs) < 2 {
				continue
			}
			share := float64(len(cluster.EventIDs)) / float64(len(events))
			for _, id := range cluster.EventIDs {
				look.Diaspora[id] = true
				if d := maxFloat(cluster.Density, share); d > look.Density[id] {
					look.Density[id] = d
				}
			}
		}
		return nil
	})
}

// festivalYear picks the year to resolve a festival period in: the
// earliest candidate start when one exists, otherwise the target date.
func festivalYear(events []model.Event, date time.Time) int {
	year := date.Year()
	var earliest time.Time
	for _, ev := range events {
		if ev.Start.IsZero() {
			continue
		}
		if earliest.IsZero() || ev.Start.Before(earliest) {
			earliest = ev.Start
		}
	}
	if !earliest.IsZero() {
		year = earliest.Year()
	}
	return year
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
