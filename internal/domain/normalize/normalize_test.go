package normalize_test

import (
	"testing"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/normalize"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMinMax(t *testing.T) {
	Convey("Given raw component scores across a candidate set", t, func() {
		set := []types.ComponentScores{
			{types.CriterionCultural: 0.2, types.CriterionGeographic: 0.5},
			{types.CriterionCultural: 0.6, types.CriterionGeographic: 0.5},
			{types.CriterionCultural: 1.0, types.CriterionGeographic: 0.5},
		}

		Convey("When normalizing", func() {
			out := normalize.MinMax(set)

			Convey("Then each criterion spans the full range", func() {
				So(out[0][types.CriterionCultural], ShouldAlmostEqual, 0.0, 1e-12)
				So(out[1][types.CriterionCultural], ShouldAlmostEqual, 0.5, 1e-12)
				So(out[2][types.CriterionCultural], ShouldAlmostEqual, 1.0, 1e-12)
			})

			Convey("Then a degenerate range maps every candidate to 1", func() {
				for _, s := range out {
					So(s[types.CriterionGeographic], ShouldEqual, 1.0)
				}
			})

			Convey("Then the inputs are not mutated", func() {
				So(set[0][types.CriterionCultural], ShouldEqual, 0.2)
				So(set[0][types.CriterionGeographic], ShouldEqual, 0.5)
			})

			Convey("Then all outputs stay within bounds", func() {
				for _, s := range out {
					for _, v := range s {
						So(v, ShouldBeBetweenOrEqual, 0, 1)
					}
				}
			})
		})

		Convey("When normalizing twice", func() {
			once := normalize.MinMax(set)
			twice := normalize.MinMax(once)

			Convey("Then the operation is idempotent", func() {
				So(twice, ShouldResemble, once)
			})
		})
	})

	Convey("Given candidates with partial criterion coverage", t, func() {
		set := []types.ComponentScores{
			{types.CriterionCultural: 0.3},
			{types.CriterionCultural: 0.9, types.CriterionTime: 0.4},
		}

		out := normalize.MinMax(set)

		Convey("Then absent criteria stay absent", func() {
			_, ok := out[0][types.CriterionTime]
			So(ok, ShouldBeFalse)
		})

		Convey("Then a criterion observed once is treated as degenerate", func() {
			So(out[1][types.CriterionTime], ShouldEqual, 1.0)
		})
	})

	Convey("Given an empty candidate set", t, func() {
		So(normalize.MinMax(nil), ShouldBeNil)
	})
}
