package dedupe_test

import (
	"testing"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/dedupe"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEvents(t *testing.T) {
	Convey("Given a candidate set with duplicate IDs", t, func() {
		events := []model.Event{
			{ID: "vesak-lanterns", Title: "first copy"},
			{ID: "poya-ceremony"},
			{ID: "vesak-lanterns", Title: "second copy"},
			{ID: "dance-recital"},
			{ID: "poya-ceremony"},
		}

		unique, dropped := dedupe.Events(events)

		Convey("Then first occurrences survive in order", func() {
			So(len(unique), ShouldEqual, 3)
			So(unique[0].ID, ShouldEqual, "vesak-lanterns")
			So(unique[0].Title, ShouldEqual, "first copy")
			So(unique[1].ID, ShouldEqual, "poya-ceremony")
			So(unique[2].ID, ShouldEqual, "dance-recital")
		})

		Convey("Then every dropped ID is reported", func() {
			So(dropped, ShouldResemble, []string{"vesak-lanterns", "poya-ceremony"})
		})
	})

	Convey("Given a candidate set without duplicates", t, func() {
		events := []model.Event{{ID: "a"}, {ID: "b"}}

		unique, dropped := dedupe.Events(events)

		So(len(unique), ShouldEqual, 2)
		So(dropped, ShouldBeEmpty)
	})

	Convey("Given an empty candidate set", t, func() {
		unique, dropped := dedupe.Events(nil)

		So(unique, ShouldBeEmpty)
		So(dropped, ShouldBeEmpty)
	})
}

func TestSeenSet(t *testing.T) {
	Convey("Given a fresh seen set", t, func() {
		seen := dedupe.NewSeenSet()

		Convey("Then the first sighting records, the second reports", func() {
			So(seen.SeenAndRecord("x"), ShouldBeFalse)
			So(seen.SeenAndRecord("x"), ShouldBeTrue)
			So(seen.SeenAndRecord("y"), ShouldBeFalse)
		})
	})
}
