package geo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/geo"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	scarborough = model.Coordinates{Latitude: 43.7764, Longitude: -79.2318}
	markham     = model.Coordinates{Latitude: 43.8561, Longitude: -79.3370}
	colombo     = model.Coordinates{Latitude: 6.9271, Longitude: 79.8612}
)

func coordLoc(name string, c model.Coordinates) model.Location {
	return model.Location{Name: name, Coordinates: &model.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}}
}

func TestCalculateDistance(t *testing.T) {
	Convey("Given the proximity service", t, func() {
		svc := geo.NewInMemoryProximity()
		ctx := context.Background()

		Convey("When measuring nearby suburbs", func() {
			km, err := svc.CalculateDistance(ctx, scarborough, markham)

			So(err, ShouldBeNil)
			So(km, ShouldBeBetween, 10, 15)
		})

		Convey("When measuring across hemispheres", func() {
			km, err := svc.CalculateDistance(ctx, scarborough, colombo)

			So(err, ShouldBeNil)
			So(km, ShouldBeBetween, 13000, 15000)
		})

		Convey("When measuring a point against itself", func() {
			km, err := svc.CalculateDistance(ctx, scarborough, scarborough)

			So(err, ShouldBeNil)
			So(km, ShouldEqual, 0)
		})
	})
}

func TestProximityScore(t *testing.T) {
	Convey("Given the proximity service", t, func() {
		svc := geo.NewInMemoryProximity()
		ctx := context.Background()

		Convey("Then the score decays exponentially with distance", func() {
			zero, _ := svc.CalculateProximityScore(ctx, 0)
			half, _ := svc.CalculateProximityScore(ctx, 25)
			quarter, _ := svc.CalculateProximityScore(ctx, 50)

			So(zero, ShouldEqual, 1.0)
			So(half, ShouldAlmostEqual, 0.5, 1e-12)
			So(quarter, ShouldAlmostEqual, 0.25, 1e-12)
		})

		Convey("Then invalid distances map to the fallback", func() {
			v, err := svc.CalculateProximityScore(ctx, -3)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.5)
		})
	})
}

func TestDiasporaLookups(t *testing.T) {
	Convey("Given a service seeded with diaspora hubs", t, func() {
		svc := geo.NewInMemoryProximity(
			geo.WithDiasporaRegion("Scarborough", 0.9),
			geo.WithDiasporaRegion("Markham", 0.4),
		)
		ctx := context.Background()

		Convey("Then hub regions report density and membership", func() {
			d, err := svc.GetCommunityDensity(ctx, model.Location{Name: "Scarborough"})
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 0.9)

			ok, err := svc.IsDiasporaLocation(ctx, model.Location{Name: "scarborough"})
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("Then unknown regions report zero density", func() {
			d, err := svc.GetCommunityDensity(ctx, model.Location{Name: "Thunder Bay"})
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 0)

			ok, _ := svc.IsDiasporaLocation(ctx, model.Location{Name: "Thunder Bay"})
			So(ok, ShouldBeFalse)
		})
	})
}

func TestRegionalMatch(t *testing.T) {
	Convey("Given regional preferences favoring cultural events", t, func() {
		svc := geo.NewInMemoryProximity(
			geo.WithRegionalPreferences(geo.RegionalPreferences{
				Region:           "Scarborough",
				PreferredNatures: []model.EventNature{model.NatureCultural, model.NatureReligious},
			}),
		)
		ctx := context.Background()

		prefs, err := svc.GetRegionalPreferences(ctx, model.Location{Name: "Scarborough"})
		So(err, ShouldBeNil)

		Convey("Then preferred natures score high", func() {
			v, err := svc.CalculateRegionalMatch(ctx, model.Event{Nature: model.NatureCultural}, prefs)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.9)
		})

		Convey("Then other natures score low", func() {
			v, _ := svc.CalculateRegionalMatch(ctx, model.Event{Nature: model.NatureProfessional}, prefs)
			So(v, ShouldEqual, 0.3)
		})

		Convey("Then a region without preferences is neutral", func() {
			empty, _ := svc.GetRegionalPreferences(ctx, model.Location{Name: "Nowhere"})
			v, _ := svc.CalculateRegionalMatch(ctx, model.Event{Nature: model.NatureCultural}, empty)
			So(v, ShouldEqual, 0.5)
		})
	})
}

func TestTransportationAccessibility(t *testing.T) {
	Convey("Given a transit-dependent user", t, func() {
		svc := geo.NewInMemoryProximity()
		ctx := context.Background()
		tp := model.TransportPreferences{
			Preferred: []model.TransportMode{model.TransportTransit},
			Avoided:   []model.TransportMode{model.TransportCar},
		}

		Convey("When the event supports transit", func() {
			v, err := svc.CalculateTransportationAccessibility(ctx, model.Event{
				TransportModes: []model.TransportMode{model.TransportTransit, model.TransportCar},
			}, tp)

			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 0.65, 1e-12)
		})

		Convey("When the event is reachable only by avoided modes", func() {
			v, _ := svc.CalculateTransportationAccessibility(ctx, model.Event{
				TransportModes: []model.TransportMode{model.TransportCar},
			}, tp)

			So(v, ShouldAlmostEqual, 0.1, 1e-12)
		})

		Convey("When the event declares no transport modes", func() {
			v, _ := svc.CalculateTransportationAccessibility(ctx, model.Event{}, tp)
			So(v, ShouldEqual, 0.5)
		})
	})

	Convey("Given a user with accessibility needs", t, func() {
		svc := geo.NewInMemoryProximity()
		tp := model.TransportPreferences{AccessibilityNeeds: []string{"wheelchair"}}

		Convey("Then walk-only venues are penalized", func() {
			v, _ := svc.CalculateTransportationAccessibility(context.Background(), model.Event{
				TransportModes: []model.TransportMode{model.TransportWalking},
			}, tp)
			So(v, ShouldAlmostEqual, 0.1, 1e-12)
		})
	})
}

func TestMultiLocationProximity(t *testing.T) {
	Convey("Given a home location with coordinates", t, func() {
		svc := geo.NewInMemoryProximity()
		ctx := context.Background()
		home := coordLoc("home", scarborough)

		Convey("When the event has one locatable venue", func() {
			km, err := svc.CalculateMultiLocationProximity(ctx, home, []model.Location{coordLoc("venue", markham)})

			So(err, ShouldBeNil)
			So(km, ShouldBeBetween, 10, 15)
		})

		Convey("When a venue without coordinates is mixed in", func() {
			km, err := svc.CalculateMultiLocationProximity(ctx, home, []model.Location{
				coordLoc("venue", markham),
				{Name: "tba"},
			})

			Convey("Then only locatable venues shape the centroid", func() {
				So(err, ShouldBeNil)
				So(km, ShouldBeBetween, 10, 15)
			})
		})

		Convey("When no venue is locatable", func() {
			_, err := svc.CalculateMultiLocationProximity(ctx, home, []model.Location{{Name: "tba"}})
			So(errors.Is(err, geo.ErrMissingLocation), ShouldBeTrue)
		})

		Convey("When the home has no coordinates", func() {
			_, err := svc.CalculateMultiLocationProximity(ctx, model.Location{Name: "home"}, []model.Location{coordLoc("venue", markham)})
			So(errors.Is(err, geo.ErrMissingLocation), ShouldBeTrue)
		})
	})
}

func TestLocationEdgeCases(t *testing.T) {
	Convey("Given a service with a border region", t, func() {
		svc := geo.NewInMemoryProximity(geo.WithBorderRegion("Niagara Falls"))
		ctx := context.Background()
		home := coordLoc("home", scarborough)

		Convey("When the event has no location at all", func() {
			res, err := svc.HandleLocationEdgeCase(ctx, home, model.Event{ID: "nowhere"})

			So(err, ShouldBeNil)
			So(res.Handled, ShouldBeTrue)
			So(res.Score, ShouldEqual, 0.5)
			So(res.Reason, ShouldNotBeEmpty)
		})

		Convey("When the venue has no coordinates", func() {
			res, _ := svc.HandleLocationEdgeCase(ctx, home, model.Event{
				ID:        "vague",
				Locations: []model.Location{{Name: "somewhere"}},
			})

			So(res.Handled, ShouldBeTrue)
			So(res.Score, ShouldEqual, 0.5)
		})

		Convey("When the venue sits in a border region", func() {
			res, _ := svc.HandleLocationEdgeCase(ctx, home, model.Event{
				ID:        "falls",
				Locations: []model.Location{coordLoc("Niagara Falls", model.Coordinates{Latitude: 43.0896, Longitude: -79.0849})},
			})

			So(res.Handled, ShouldBeTrue)
			So(res.Reason, ShouldContainSubstring, "border")
		})

		Convey("When the venue is ordinary", func() {
			res, _ := svc.HandleLocationEdgeCase(ctx, home, model.Event{
				ID:        "fine",
				Locations: []model.Location{coordLoc("venue", markham)},
			})

			So(res.Handled, ShouldBeFalse)
		})
	})
}

func TestAnalyzeCommunityCluster(t *testing.T) {
	Convey("Given events spread over two areas", t, func() {
		svc := geo.NewInMemoryProximity(geo.WithDiasporaRegion("venue-a", 0.7))
		ctx := context.Background()
		home := coordLoc("home", scarborough)

		events := []model.Event{
			{ID: "a1", Locations: []model.Location{coordLoc("venue-a", scarborough)}},
			{ID: "a2", Locations: []model.Location{coordLoc("venue-b", model.Coordinates{Latitude: 43.78, Longitude: -79.25})}},
			{ID: "b1", Locations: []model.Location{coordLoc("venue-c", colombo)}},
			{ID: "skip"},
		}

		clusters, err := svc.AnalyzeCommunityCluster(ctx, home, events)

		So(err, ShouldBeNil)

		Convey("Then nearby venues share one cluster and the largest leads", func() {
			So(len(clusters), ShouldEqual, 2)
			So(clusters[0].EventIDs, ShouldResemble, []string{"a1", "a2"})
			So(clusters[1].EventIDs, ShouldResemble, []string{"b1"})
		})

		Convey("Then cluster density comes from the anchoring venue", func() {
			So(clusters[0].Density, ShouldEqual, 0.7)
		})

		Convey("Then events without coordinates are left out", func() {
			for _, c := range clusters {
				So(c.EventIDs, ShouldNotContain, "skip")
			}
		})
	})
}
