package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Pitchflow PitchflowConfig `yaml:"pitchflow"`
	Feed      FeedConfig      `yaml:"feed"`
	Refresh   RefreshConfig   `yaml:"refresh"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type PitchflowConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// FeedConfig describes the upstream MLB Stats API endpoint. The feed is a
// public REST API, so the only tunables are the base URL, the per-request
// timeout and a polite client-side rate limit.
type FeedConfig struct {
	BaseURL           string   `yaml:"base_url"`
	Timeout           Duration `yaml:"timeout"`
	RequestsPerSecond int      `yaml:"requests_per_second"`
	BurstSize         int      `yaml:"burst_size"`
	SportID           int      `yaml:"sport_id"`
}

// RefreshConfig carries the cron expressions used to poll the schedule and
// re-analyze games that are still in progress.
type RefreshConfig struct {
	ScheduleSpec string `yaml:"schedule_spec"`
	LiveSpec     string `yaml:"live_spec"`
}

// AnalysisConfig holds the geometric constants of the pitch analysis. The
// plate half width is the rule-book referenced horizontal extent of the
// strike zone in feet; it is configuration rather than a package-level
// constant so alternate leagues or units can be analyzed.
type AnalysisConfig struct {
	PlateHalfWidth float64 `yaml:"plate_half_width"`
	MinHullPoints  int     `yaml:"min_hull_points"`
}

type DashboardConfig struct {
	Enabled         bool     `yaml:"enabled"`
	Address         string   `yaml:"address"`
	RefreshInterval Duration `yaml:"refresh_interval"`
	LogHistory      int      `yaml:"log_history"`
	ResourceHistory int      `yaml:"resource_history"`
	CacheTTL        Duration `yaml:"cache_ttl"`
	CacheSize       int      `yaml:"cache_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

// DefaultPlateHalfWidth is half the rule-book plate width plus one baseball
// radius, in feet. Used when the configuration does not override it.
const DefaultPlateHalfWidth = 0.708333

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Config{
		Feed: FeedConfig{
			BaseURL:           "https://statsapi.mlb.com/api/v1",
			Timeout:           Duration(10 * time.Second),
			RequestsPerSecond: 5,
			BurstSize:         5,
			SportID:           1,
		},
		Refresh: RefreshConfig{
			ScheduleSpec: "@every 1m",
			LiveSpec:     "@every 15s",
		},
		Analysis: AnalysisConfig{
			PlateHalfWidth: DefaultPlateHalfWidth,
			MinHullPoints:  3,
		},
		Dashboard: DashboardConfig{
			Enabled:         true,
			Address:         "0.0.0.0:8686",
			RefreshInterval: Duration(5 * time.Second),
			LogHistory:      200,
			ResourceHistory: 200,
			CacheTTL:        Duration(10 * time.Second),
			CacheSize:       50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment overrides for the feed endpoint, useful for tests and
	// mirrored deployments.
	if v := os.Getenv("STATSAPI_BASE_URL"); v != "" {
		config.Feed.BaseURL = strings.TrimSpace(v)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the invariants the rest of the application relies on.
func (c *Config) Validate() error {
	if c.Feed.BaseURL == "" {
		return fmt.Errorf("feed.base_url must not be empty")
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed.timeout must be positive")
	}
	if c.Analysis.PlateHalfWidth <= 0 {
		return fmt.Errorf("analysis.plate_half_width must be positive")
	}
	if c.Analysis.MinHullPoints < 3 {
		return fmt.Errorf("analysis.min_hull_points must be at least 3")
	}
	return nil
}
