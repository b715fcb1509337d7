package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/mindlab/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, "memory")
				convey.So(cfg.CacheTTLMS, convey.ShouldEqual, 3000)
				convey.So(cfg.NotesLimit, convey.ShouldEqual, 80)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MINDLAB_ADDR", ":8080")
			_ = os.Setenv("MINDLAB_STORE_BACKEND", "CSV")
			_ = os.Setenv("MINDLAB_STORE_PATH", "/tmp/journal.csv")
			_ = os.Setenv("MINDLAB_CACHE_TTL_MS", "0")
			_ = os.Setenv("MINDLAB_PASSPHRASE", "vvl")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, "csv")
				convey.So(cfg.StorePath, convey.ShouldEqual, "/tmp/journal.csv")
				convey.So(cfg.CacheTTL(), convey.ShouldEqual, time.Duration(0))
				convey.So(cfg.Passphrase, convey.ShouldEqual, "vvl")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
# journal settings
addr: ":9090"
store_backend: sqlite
store_path: journal.db
notes_limit: 120
report_title: "Weekly review"
`)
			_ = os.Setenv("MINDLAB_CONFIG", tmpFile)
			_ = os.Setenv("MINDLAB_NOTES_LIMIT", "60")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, "sqlite")
				convey.So(cfg.ReportTitle, convey.ShouldEqual, "Weekly review")
				convey.So(cfg.NotesLimit, convey.ShouldEqual, 60)
				convey.So(cfg.CacheTTLMS, convey.ShouldEqual, 3000)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("MINDLAB_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MINDLAB_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MINDLAB_NOTES_LIMIT", "plenty")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MINDLAB_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the csv backend has no path", func() {
			_ = os.Setenv("MINDLAB_STORE_BACKEND", "csv")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MINDLAB_CONFIG",
		"MINDLAB_ADDR",
		"MINDLAB_STORE_BACKEND",
		"MINDLAB_STORE_PATH",
		"MINDLAB_CACHE_TTL_MS",
		"MINDLAB_PASSPHRASE",
		"MINDLAB_NOTES_LIMIT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp(t.TempDir(), "mindlab-config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpFile.Name()
}
