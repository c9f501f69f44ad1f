package rank_test

import (
	"testing"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/rank"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAggregate(t *testing.T) {
	Convey("Given normalized component scores and weights", t, func() {
		components := types.ComponentScores{
			types.CriterionCultural:   1.0,
			types.CriterionGeographic: 0.5,
		}

		Convey("When weights are equal", func() {
			weights := types.Weights{
				types.CriterionCultural:   1.0,
				types.CriterionGeographic: 1.0,
			}
			score := rank.Aggregate(components, weights, nil)

			Convey("Then the composite is the plain mean", func() {
				So(score.Value, ShouldAlmostEqual, 0.75, 1e-12)
			})
		})

		Convey("When one criterion is weighted heavier", func() {
			weights := types.Weights{
				types.CriterionCultural:   3.0,
				types.CriterionGeographic: 1.0,
			}
			score := rank.Aggregate(components, weights, nil)

			Convey("Then the composite shifts toward it", func() {
				So(score.Value, ShouldAlmostEqual, 0.875, 1e-12)
			})
		})

		Convey("When a component has no weight", func() {
			weights := types.Weights{types.CriterionCultural: 1.0}
			score := rank.Aggregate(components, weights, nil)

			Convey("Then it contributes nothing", func() {
				So(score.Value, ShouldEqual, 1.0)
			})
		})

		Convey("When increasing one component with positive weight", func() {
			weights := types.Weights{
				types.CriterionCultural:   1.0,
				types.CriterionGeographic: 1.0,
			}
			lower := rank.Aggregate(components, weights, nil)
			raised := components.Clone()
			raised[types.CriterionGeographic] = 0.9
			higher := rank.Aggregate(raised, weights, nil)

			Convey("Then the composite strictly increases", func() {
				So(higher.Value, ShouldBeGreaterThan, lower.Value)
			})
		})

		Convey("When all weights are zero", func() {
			score := rank.Aggregate(components, types.Weights{}, nil)
			So(score.Value, ShouldEqual, 0.0)
		})

		Convey("Then the composite never leaves the unit interval", func() {
			weights := types.Weights{
				types.CriterionCultural:   17.0,
				types.CriterionGeographic: 0.01,
			}
			score := rank.Aggregate(components, weights, nil)
			So(score.Value, ShouldBeBetweenOrEqual, 0, 1)
		})

		Convey("Then edge-case markers are carried through", func() {
			score := rank.Aggregate(components, types.Weights{types.CriterionCultural: 1}, []types.Criterion{types.CriterionProximity})
			So(score.HasEdgeCase(types.CriterionProximity), ShouldBeTrue)
		})
	})
}

func TestSort(t *testing.T) {
	Convey("Given recommendations in arbitrary order", t, func() {
		recs := []types.Recommendation{
			{Event: model.Event{ID: "mid"}, Score: types.CompositeScore{Value: 0.5}},
			{Event: model.Event{ID: "top"}, Score: types.CompositeScore{Value: 0.9}},
			{Event: model.Event{ID: "low"}, Score: types.CompositeScore{Value: 0.1}},
			{Event: model.Event{ID: "tied"}, Score: types.CompositeScore{Value: 0.5}},
		}

		rank.Sort(recs)

		Convey("Then scores descend", func() {
			So(recs[0].Event.ID, ShouldEqual, "top")
			So(recs[3].Event.ID, ShouldEqual, "low")
		})

		Convey("Then equal scores keep their input order", func() {
			So(recs[1].Event.ID, ShouldEqual, "mid")
			So(recs[2].Event.ID, ShouldEqual, "tied")
		})
	})
}

func TestBoost(t *testing.T) {
	Convey("Given a base weight vector", t, func() {
		weights := types.Weights{
			types.CriterionCultural: 1.5,
			types.CriterionTime:     1.0,
		}

		boosted := rank.Boost(weights, 3.0, types.CriterionTime)

		Convey("Then only the listed criteria are amplified", func() {
			So(boosted[types.CriterionTime], ShouldEqual, 3.0)
			So(boosted[types.CriterionCultural], ShouldEqual, 1.5)
		})

		Convey("Then the original vector is untouched", func() {
			So(weights[types.CriterionTime], ShouldEqual, 1.0)
		})
	})
}
