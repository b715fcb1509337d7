package period

import (
	"testing"
	"time"

	"github.com/okian/mindlab/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func at(ts time.Time, venue string) model.Record {
	r := model.NewRecord(venue, 70)
	r.Timestamp = ts
	return r
}

func TestParse(t *testing.T) {
	Convey("Given period tokens", t, func() {
		So(Parse("last_7_days"), ShouldEqual, Last7Days)
		So(Parse("  LAST_MONTH "), ShouldEqual, LastMonth)
		So(Parse("Last 6 months"), ShouldEqual, Last6Months)
		So(Parse("Ultimo Anno"), ShouldEqual, LastYear)
		So(Parse("Lifelong"), ShouldEqual, AllTime)

		Convey("Then unknown tokens default to all time", func() {
			So(Parse("fortnight"), ShouldEqual, AllTime)
			So(Parse(""), ShouldEqual, AllTime)
			So(Selector("bogus").Label(), ShouldEqual, "All time")
		})
	})
}

func TestLookback(t *testing.T) {
	Convey("Given the lookback table", t, func() {
		want := map[Selector]int{Last7Days: 7, LastMonth: 30, Last6Months: 182, LastYear: 365}
		for s, days := range want {
			got, ok := s.LookbackDays()
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, days)
		}
		_, ok := AllTime.LookbackDays()
		So(ok, ShouldBeFalse)
	})
}

func TestWindow(t *testing.T) {
	now := time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)

	Convey("Given every bounded period", t, func() {
		for _, s := range All() {
			keep := Window(s, now)

			Convey("Then a record stamped now is included for "+string(s), func() {
				So(keep(at(now, "x")), ShouldBeTrue)
			})

			if since, ok := s.Since(now); ok {
				Convey("Then the boundary is inclusive for "+string(s), func() {
					So(keep(at(since, "x")), ShouldBeTrue)
					So(keep(at(since.Add(-time.Nanosecond), "x")), ShouldBeFalse)
				})
			}
		}
	})

	Convey("Given all time", t, func() {
		keep := Window(AllTime, now)
		So(keep(at(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "old")), ShouldBeTrue)
	})
}

func TestFilter(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	Convey("Given records out of chronological order", t, func() {
		records := []model.Record{
			at(now.AddDate(0, 0, -1), "B"),
			at(now.AddDate(0, 0, -40), "old"),
			at(now.AddDate(0, 0, -3), "A"),
		}

		Convey("When filtering the last 7 days", func() {
			got := Filter(records, Window(Last7Days, now))

			Convey("Then matching records keep their relative order", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].Venue, ShouldEqual, "B")
				So(got[1].Venue, ShouldEqual, "A")
			})

			Convey("And the source is untouched", func() {
				So(records, ShouldHaveLength, 3)
				So(records[1].Venue, ShouldEqual, "old")
			})
		})

		Convey("When filtering an empty sequence", func() {
			got := Filter(nil, Window(LastYear, now))
			So(got, ShouldBeEmpty)
		})
	})
}
