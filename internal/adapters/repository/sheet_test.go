package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCSVSheet(t *testing.T) {
	ctx := context.Background()

	Convey("Given a CSV sheet over a missing file", t, func() {
		path := filepath.Join(t.TempDir(), "journal.csv")
		sheet := NewCSVSheet(path)

		Convey("Then it reads as empty", func() {
			rows, err := sheet.ReadAll(ctx)
			So(err, ShouldBeNil)
			So(rows, ShouldBeEmpty)
		})

		Convey("When a store appends through it", func() {
			store := NewSheetStore(sheet, WithCacheTTL(0))
			rec := entry(time.Now(), "Club A", 74)
			rec.Notes = "  line one, with \"quotes\" "
			So(store.Append(ctx, rec), ShouldBeNil)
			So(store.Append(ctx, entry(time.Now(), "Club B", 0)), ShouldBeNil)

			Convey("Then the file round-trips", func() {
				records, err := store.Load(ctx)
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(records[0].Notes, ShouldEqual, rec.Notes)
				So(records[1].IsTraining(), ShouldBeTrue)
			})

			Convey("Then no temp files are left behind", func() {
				entries, _ := os.ReadDir(filepath.Dir(path))
				So(entries, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given a CSV sheet in a missing directory", t, func() {
		sheet := NewCSVSheet(filepath.Join(t.TempDir(), "nope", "journal.csv"))
		store := NewSheetStore(sheet, WithCacheTTL(0))

		Convey("Then append fails as a write failure", func() {
			err := store.Append(ctx, entry(time.Now(), "Club A", 74))
			So(errors.Is(err, ErrStoreWrite), ShouldBeTrue)
		})
	})
}

func TestSQLiteSheet(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh SQLite sheet", t, func() {
		sheet, err := OpenSQLiteSheet(ctx, filepath.Join(t.TempDir(), "journal.db"))
		So(err, ShouldBeNil)
		defer sheet.Close()

		Convey("Then it reads as empty", func() {
			rows, err := sheet.ReadAll(ctx)
			So(err, ShouldBeNil)
			So(rows, ShouldBeEmpty)
		})

		Convey("When rows are replaced twice", func() {
			So(sheet.WriteAll(ctx, [][]string{Header, {"a"}, {"b"}}), ShouldBeNil)
			So(sheet.WriteAll(ctx, [][]string{Header, {"c"}}), ShouldBeNil)

			Convey("Then only the last collection remains, in order", func() {
				rows, err := sheet.ReadAll(ctx)
				So(err, ShouldBeNil)
				So(rows, ShouldResemble, [][]string{Header, {"c"}})
			})
		})

		Convey("When a store appends through it", func() {
			store := NewSheetStore(sheet, WithCacheTTL(0))
			So(store.Append(ctx, entry(time.Now(), "Club A", 74)), ShouldBeNil)

			records, err := store.Load(ctx)
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 1)
			So(records[0].Venue, ShouldEqual, "Club A")
		})
	})
}

func TestOpenSheet(t *testing.T) {
	ctx := context.Background()

	Convey("Given backend names", t, func() {
		sh, closeFn, err := OpenSheet(ctx, BackendMemory, "")
		So(err, ShouldBeNil)
		So(sh, ShouldHaveSameTypeAs, &MemorySheet{})
		So(closeFn(), ShouldBeNil)

		sh, _, err = OpenSheet(ctx, BackendCSV, filepath.Join(t.TempDir(), "j.csv"))
		So(err, ShouldBeNil)
		So(sh, ShouldHaveSameTypeAs, &CSVSheet{})

		sh, closeFn, err = OpenSheet(ctx, BackendSQLite, filepath.Join(t.TempDir(), "j.db"))
		So(err, ShouldBeNil)
		So(sh, ShouldHaveSameTypeAs, &SQLiteSheet{})
		So(closeFn(), ShouldBeNil)

		_, closeFn, err = OpenSheet(ctx, "gsheets", "")
		So(errors.Is(err, ErrUnknownBackend), ShouldBeTrue)
		So(closeFn, ShouldNotBeNil)
	})
}
