package seed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/mindlab/internal/adapters/http/api"
	service "github.com/okian/mindlab/internal/app"
	"github.com/okian/mindlab/internal/domain/model"
	"github.com/okian/mindlab/internal/domain/period"
	"github.com/okian/mindlab/internal/domain/types"
	"github.com/okian/mindlab/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newServer(ctx context.Context, opts ...service.Option) *httptest.Server {
	svc := service.New(opts...)
	_ = svc.Start(ctx)
	mux := http.NewServeMux()
	api.NewServer(svc, svc, period.AllTime).Register(ctx, mux)
	return httptest.NewServer(mux)
}

func TestGenerateSubmissions(t *testing.T) {
	Convey("Given a batch of generated submissions", t, func() {
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		subs := generateSubmissions(50, 30, now)

		So(subs, ShouldHaveLength, 50)

		Convey("Then every entry passes record validation", func() {
			ids := map[string]bool{}
			for _, s := range subs {
				rec := model.Record{
					Venue: s.Venue, Score: s.Score,
					Acceptance: s.Acceptance, Routine: s.Routine, Decision: s.Decision,
					Focus: s.Focus, Energy: s.Energy, Tension: s.Tension,
				}
				So(rec.Validate(), ShouldBeNil)
				ids[s.SubmissionID] = true

				ts, err := time.Parse(time.RFC3339, s.Date)
				So(err, ShouldBeNil)
				So(ts.After(now), ShouldBeFalse)
				So(ts.Before(now.AddDate(0, 0, -31)), ShouldBeFalse)
			}

			Convey("And submission ids are unique", func() {
				So(ids, ShouldHaveLength, 50)
			})
		})
	})
}

func TestCompare(t *testing.T) {
	Convey("Given history and a matching analysis", t, func() {
		a := model.NewRecord("A", 70)
		a.Focus = 5
		b := model.NewRecord("B", 0)
		b.Focus = 2
		history := []types.Entry{types.EntryFrom(a), types.EntryFrom(b)}

		var skills []types.SkillMean
		for _, s := range model.AllSkills() {
			mean := 3.0
			if s == model.SkillFocus {
				mean = 3.5
			}
			skills = append(skills, types.SkillMean{Skill: string(s), Mean: mean})
		}
		analysis := types.Analysis{Count: 2, Skills: skills}

		So(compare(history, analysis, 1e-9), ShouldBeNil)

		Convey("When a mean drifts it is reported", func() {
			analysis.Skills[3].Mean = 3.4
			So(compare(history, analysis, 1e-9), ShouldNotBeNil)
		})

		Convey("When the counts disagree it is reported", func() {
			analysis.Count = 3
			So(compare(history, analysis, 1e-9), ShouldNotBeNil)
		})

		Convey("When both are empty it passes", func() {
			So(compare(nil, types.Analysis{Empty: true}, 0), ShouldBeNil)
			So(compare(nil, types.Analysis{}, 0), ShouldNotBeNil)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running journal service", t, func() {
		ctx := context.Background()
		_ = logger.InitWithWriter(io.Discard, logger.FormatText)

		srv := newServer(ctx)
		defer srv.Close()

		out := filepath.Join(t.TempDir(), "seed", "entries.json")
		cfg := &Config{
			BaseURL:     srv.URL,
			NumEntries:  25,
			SpanDays:    90,
			Duplicates:  5,
			Workers:     4,
			Timeout:     5 * time.Second,
			OutputFile:  out,
			Tolerance:   1e-9,
			PeriodToken: "all_time",
		}

		stats, err := Run(ctx, cfg)

		Convey("Then every entry is created once and resubmissions are duplicates", func() {
			So(err, ShouldBeNil)
			So(stats.Generated, ShouldEqual, 25)
			So(stats.Submitted, ShouldEqual, 30)
			So(stats.Created, ShouldEqual, 25)
			So(stats.Duplicate, ShouldEqual, 5)
			So(stats.Failed, ShouldEqual, 0)
			So(stats.Verified, ShouldEqual, 25)
		})

		Convey("Then the generated entries are saved", func() {
			_, statErr := os.Stat(out)
			So(statErr, ShouldBeNil)
		})
	})

	Convey("Given a locked journal service", t, func() {
		ctx := context.Background()
		_ = logger.InitWithWriter(io.Discard, logger.FormatText)

		srv := newServer(ctx, service.WithPassphrase("vvl"))
		defer srv.Close()

		cfg := &Config{
			BaseURL:     srv.URL,
			NumEntries:  3,
			SpanDays:    7,
			Workers:     1,
			Timeout:     5 * time.Second,
			PeriodToken: "all_time",
		}

		Convey("When the passphrase is wrong the run fails", func() {
			cfg.Passphrase = "nope"
			stats, err := Run(ctx, cfg)
			So(err, ShouldNotBeNil)
			So(stats.Created, ShouldEqual, 0)
		})

		Convey("When the passphrase is right the run succeeds", func() {
			cfg.Passphrase = "vvl"
			stats, err := Run(ctx, cfg)
			So(err, ShouldBeNil)
			So(stats.Created, ShouldEqual, 3)
		})
	})

	Convey("Given nothing listening", t, func() {
		_ = logger.InitWithWriter(io.Discard, logger.FormatText)
		cfg := &Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}
		_, err := Run(context.Background(), cfg)
		So(err, ShouldNotBeNil)
	})
}
