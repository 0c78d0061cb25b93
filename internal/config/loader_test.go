package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mergington/activities/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad_Defaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then defaults are returned", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.TestEndpoints, ShouldBeFalse)
		})
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	Convey("Given env overrides", t, func() {
		t.Setenv("ACTIVITIES_ADDR", ":9999")
		t.Setenv("ACTIVITIES_LOG_LEVEL", "debug")
		t.Setenv("ACTIVITIES_TEST_ENDPOINTS", "true")

		cfg, err := config.Load(context.Background())

		Convey("Then env values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9999")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.TestEndpoints, ShouldBeTrue)
		})
	})
}

func TestLoad_File(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "addr: \":7070\"\nlog_level: warn\nseed_file: /tmp/seed.yaml\n"
		So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)
		t.Setenv("ACTIVITIES_CONFIG", path)

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "warn")
				So(cfg.SeedFile, ShouldEqual, "/tmp/seed.yaml")
			})
		})

		Convey("And env still wins over the file", func() {
			t.Setenv("ACTIVITIES_ADDR", ":6060")
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("ACTIVITIES_CONFIG", "/nonexistent/config.yaml")

		Convey("Then loading fails with ErrLoadConfig", func() {
			_, err := config.Load(context.Background())
			So(err, ShouldWrap, config.ErrLoadConfig)
		})
	})
}

func TestLoad_Invalid(t *testing.T) {
	Convey("Given an empty addr override", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		So(os.WriteFile(path, []byte("addr: \"\"\n"), 0o600), ShouldBeNil)
		t.Setenv("ACTIVITIES_CONFIG", path)

		Convey("Then loading fails with ErrInvalidConfig", func() {
			_, err := config.Load(context.Background())
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
