package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/mindlab/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.StoreBackend, convey.ShouldEqual, "memory")
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, 3*time.Second)
			convey.So(cfg.DedupeTTL(), convey.ShouldEqual, 10*time.Minute)
			convey.So(cfg.NotesLimit, convey.ShouldEqual, 80)
			convey.So(cfg.DefaultPeriod, convey.ShouldEqual, "all_time")
			convey.So(cfg.Passphrase, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid combinations", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = " " }},
			{"unknown backend", func(c *config.Config) { c.StoreBackend = "gsheets" }},
			{"csv without path", func(c *config.Config) {
				c.StoreBackend = "csv"
				c.StorePath = ""
			}},
			{"zero notes limit", func(c *config.Config) { c.NotesLimit = 0 }},
			{"zero dedupe ttl", func(c *config.Config) { c.DedupeTTLMS = 0 }},
			{"empty page size", func(c *config.Config) { c.PageSize = "" }},
			{"unknown timezone", func(c *config.Config) { c.Timezone = "Mars/Olympus_Mons" }},
		}
		for _, tc := range cases {
			convey.Convey("Then "+tc.name+" is rejected", func() {
				cfg := config.New()
				tc.mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})

	convey.Convey("Given a timezone", t, func() {
		cfg := config.New()
		convey.So(cfg.Location(), convey.ShouldEqual, time.Local)

		cfg.Timezone = "Europe/Rome"
		convey.So(cfg.Validate(), convey.ShouldBeNil)
		convey.So(cfg.Location().String(), convey.ShouldEqual, "Europe/Rome")
	})

	convey.Convey("Given a disabled cache", t, func() {
		cfg := config.New()
		cfg.CacheTTLMS = 0
		convey.So(cfg.Validate(), convey.ShouldBeNil)
		convey.So(cfg.CacheTTL(), convey.ShouldEqual, time.Duration(0))
	})
}
