package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/mindlab/internal/domain/model"
	types "github.com/okian/mindlab/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntryFrom(t *testing.T) {
	Convey("Given a training record", t, func() {
		rec := model.NewRecord("Campo 1", 0)
		rec.Timestamp = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		rec.Tension = 1
		rec.Notes = "putting drills"

		entry := types.EntryFrom(rec)

		Convey("Then every rating is keyed by skill name", func() {
			So(entry.Ratings, ShouldHaveLength, 6)
			So(entry.Ratings["Acceptance"], ShouldEqual, 3)
			So(entry.Ratings["Tension"], ShouldEqual, 1)
		})

		Convey("Then it is flagged as training", func() {
			So(entry.Training, ShouldBeTrue)
			So(entry.Venue, ShouldEqual, "Campo 1")
			So(entry.Notes, ShouldEqual, "putting drills")
		})

		Convey("Then converting back yields the same record", func() {
			So(entry.Record(), ShouldResemble, rec)
		})
	})
}

func TestAnalysisJSON(t *testing.T) {
	Convey("Given an empty analysis", t, func() {
		a := types.Analysis{Period: "last_7_days", Label: "Last 7 days", Empty: true}
		raw, err := json.Marshal(a)
		So(err, ShouldBeNil)

		Convey("Then the chart payload is omitted", func() {
			So(string(raw), ShouldNotContainSubstring, "radar")
			So(string(raw), ShouldNotContainSubstring, "skills")
			So(string(raw), ShouldContainSubstring, `"empty":true`)
		})
	})
}
