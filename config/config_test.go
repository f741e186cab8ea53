package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, `
pitchflow:
  name: pitchflow
  version: test
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Feed.BaseURL != "https://statsapi.mlb.com/api/v1" {
		t.Fatalf("unexpected default base url: %s", cfg.Feed.BaseURL)
	}
	if cfg.Analysis.PlateHalfWidth != DefaultPlateHalfWidth {
		t.Fatalf("unexpected plate half width: %v", cfg.Analysis.PlateHalfWidth)
	}
	if cfg.Analysis.MinHullPoints != 3 {
		t.Fatalf("unexpected min hull points: %d", cfg.Analysis.MinHullPoints)
	}
	if cfg.Dashboard.RefreshInterval.Std() != 5*time.Second {
		t.Fatalf("unexpected refresh interval: %v", cfg.Dashboard.RefreshInterval)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeTempConfig(t, `
feed:
  base_url: http://localhost:9090/api/v1
  timeout: 2s
analysis:
  plate_half_width: 0.75
dashboard:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Feed.BaseURL != "http://localhost:9090/api/v1" {
		t.Fatalf("base url override lost: %s", cfg.Feed.BaseURL)
	}
	if cfg.Feed.Timeout.Std() != 2*time.Second {
		t.Fatalf("timeout override lost: %v", cfg.Feed.Timeout)
	}
	if cfg.Analysis.PlateHalfWidth != 0.75 {
		t.Fatalf("plate half width override lost: %v", cfg.Analysis.PlateHalfWidth)
	}
	if cfg.Dashboard.Enabled {
		t.Fatal("dashboard should be disabled")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("STATSAPI_BASE_URL", "http://feed.internal/api/v1")
	path := writeTempConfig(t, "feed:\n  base_url: http://ignored\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Feed.BaseURL != "http://feed.internal/api/v1" {
		t.Fatalf("env override not applied: %s", cfg.Feed.BaseURL)
	}
}

func TestLoadConfigRejectsBadGeometry(t *testing.T) {
	path := writeTempConfig(t, "analysis:\n  min_hull_points: 2\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for min_hull_points < 3")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
