package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the default initialization", t, func() {
		So(Init(), ShouldBeNil)
		So(Get(), ShouldNotBeNil)
		So(Sync(), ShouldBeNil)
	})

	Convey("Given an unknown format", t, func() {
		So(InitWithWriter(&bytes.Buffer{}, "xml"), ShouldNotBeNil)
	})
}

func TestLoggerJSON(t *testing.T) {
	Convey("Given a JSON logger over a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf, FormatJSON), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Named("store").Info(ctx, "record appended",
				String("venue", "Club A"),
				Int("rows", 3),
				Bool("cached", false),
				Duration("took", 2*time.Millisecond),
				Error(errors.New("boom")),
			)

			Convey("Then one structured line is written", func() {
				var line map[string]any
				So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
				So(line["msg"], ShouldEqual, "record appended")
				So(line["component"], ShouldEqual, "store")
				So(line["venue"], ShouldEqual, "Club A")
				So(line["rows"], ShouldEqual, 3.0)
				So(line["error"], ShouldEqual, "boom")
				So(line["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level filters debug", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Debug(ctx, "hidden")
			Get().Info(ctx, "hidden too")
			Get().Warn(ctx, "shown")

			Convey("Then only the warning is written", func() {
				out := buf.String()
				So(out, ShouldNotContainSubstring, "hidden")
				So(strings.Count(out, "\n"), ShouldEqual, 1)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		for _, lvl := range []string{"debug", "INFO", " warn ", "warning", "error", ""} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("loud"), ShouldNotBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("Given the discard logger", t, func() {
		l := Nop()
		So(func() { l.Named("x").Error(context.Background(), "nothing") }, ShouldNotPanic)
	})
}
