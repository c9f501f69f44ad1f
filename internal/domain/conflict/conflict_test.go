package conflict_test

import (
	"testing"
	"time"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/conflict"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(id string, start time.Time, dur time.Duration, composite float64) types.Recommendation {
	return types.Recommendation{
		Event: model.Event{ID: id, Title: id, Start: start, End: start.Add(dur)},
		Score: types.CompositeScore{Value: composite},
	}
}

func TestResolveTimeOverlaps(t *testing.T) {
	Convey("Given two recommendations with overlapping schedules", t, func() {
		base := time.Date(2025, time.May, 10, 18, 0, 0, 0, time.UTC)
		strong := rec("temple-ceremony", base, 3*time.Hour, 0.9)
		weak := rec("trivia-night", base.Add(time.Hour), 2*time.Hour, 0.4)

		resolver := conflict.NewResolver()

		Convey("When resolving", func() {
			accepted, groups := resolver.Resolve([]types.Recommendation{strong, weak})

			Convey("Then only the higher-scored event survives", func() {
				So(len(accepted), ShouldEqual, 1)
				So(accepted[0].Event.ID, ShouldEqual, "temple-ceremony")
			})

			Convey("Then the conflict is recorded with a reason", func() {
				So(len(groups), ShouldEqual, 1)
				So(groups[0].Kind, ShouldEqual, types.ConflictTimeOverlap)
				So(groups[0].Outcome, ShouldEqual, types.OutcomeRejected)
				So(groups[0].Reason, ShouldNotBeEmpty)
			})
		})

		Convey("When the weaker event carries an explicit priority tag", func() {
			weak.Event.Priority = 10
			accepted, _ := resolver.Resolve([]types.Recommendation{strong, weak})

			Convey("Then the tag outranks the composite score", func() {
				So(len(accepted), ShouldEqual, 1)
				So(accepted[0].Event.ID, ShouldEqual, "trivia-night")
			})
		})
	})

	Convey("Given recommendations that do not overlap", t, func() {
		base := time.Date(2025, time.May, 10, 9, 0, 0, 0, time.UTC)
		morning := rec("morning", base, 2*time.Hour, 0.7)
		evening := rec("evening", base.Add(9*time.Hour), 2*time.Hour, 0.6)

		accepted, groups := conflict.NewResolver().Resolve([]types.Recommendation{morning, evening})

		Convey("Then both survive and nothing is reported", func() {
			So(len(accepted), ShouldEqual, 2)
			So(groups, ShouldBeEmpty)
		})
	})

	Convey("Given three mutually overlapping recommendations", t, func() {
		base := time.Date(2025, time.May, 10, 14, 0, 0, 0, time.UTC)
		recs := []types.Recommendation{
			rec("a", base, 4*time.Hour, 0.8),
			rec("b", base.Add(time.Hour), 4*time.Hour, 0.5),
			rec("c", base.Add(2*time.Hour), 4*time.Hour, 0.3),
		}

		accepted, groups := conflict.NewResolver().Resolve(recs)

		Convey("Then exactly one survivor remains", func() {
			So(len(accepted), ShouldEqual, 1)
			So(accepted[0].Event.ID, ShouldEqual, "a")
			So(len(groups), ShouldEqual, 2)
		})
	})
}

func TestResolveCulturalFloor(t *testing.T) {
	Convey("Given a resolver with a sensitivity floor", t, func() {
		resolver := conflict.NewResolver(conflict.WithCulturalFloor(0.6))
		base := time.Date(2025, time.May, 10, 10, 0, 0, 0, time.UTC)

		appropriate := rec("ceremony", base, time.Hour, 0.9)
		appropriate.Score.Components = types.ComponentScores{types.CriterionCultural: 0.95}

		inappropriate := rec("tasting", base.AddDate(0, 0, 1), time.Hour, 0.7)
		inappropriate.Score.Components = types.ComponentScores{types.CriterionCultural: 0.2}

		Convey("When resolving", func() {
			accepted, groups := resolver.Resolve([]types.Recommendation{appropriate, inappropriate})

			Convey("Then events below the floor are rejected outright", func() {
				So(len(accepted), ShouldEqual, 1)
				So(accepted[0].Event.ID, ShouldEqual, "ceremony")
			})

			Convey("Then the rejection names the floor", func() {
				So(len(groups), ShouldEqual, 1)
				So(groups[0].Kind, ShouldEqual, types.ConflictCulturalFloor)
				So(groups[0].Reason, ShouldContainSubstring, "0.60")
			})
		})

		Convey("When a low cultural score came from fallback handling", func() {
			flagged := rec("unknown-venue", base.AddDate(0, 0, 2), time.Hour, 0.5)
			flagged.Score.Components = types.ComponentScores{types.CriterionCultural: 0.5}
			flagged.Score.EdgeCases = []types.Criterion{types.CriterionCultural}

			accepted, groups := resolver.Resolve([]types.Recommendation{flagged})

			Convey("Then missing data never gets an event rejected", func() {
				So(len(accepted), ShouldEqual, 1)
				So(groups, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a resolver without a floor", t, func() {
		resolver := conflict.NewResolver()
		low := rec("anything", time.Date(2025, time.May, 10, 10, 0, 0, 0, time.UTC), time.Hour, 0.3)
		low.Score.Components = types.ComponentScores{types.CriterionCultural: 0.05}

		accepted, groups := resolver.Resolve([]types.Recommendation{low})

		Convey("Then no cultural rejection happens", func() {
			So(len(accepted), ShouldEqual, 1)
			So(groups, ShouldBeEmpty)
		})
	})

	Convey("Given a rules table with time overlaps disabled", t, func() {
		resolver := conflict.NewResolver(conflict.WithRules(types.ConflictRules{}))
		base := time.Date(2025, time.May, 10, 18, 0, 0, 0, time.UTC)
		a := rec("a", base, 2*time.Hour, 0.9)
		b := rec("b", base, 2*time.Hour, 0.2)

		accepted, _ := resolver.Resolve([]types.Recommendation{a, b})

		Convey("Then overlapping events both pass", func() {
			So(len(accepted), ShouldEqual, 2)
		})
	})
}
