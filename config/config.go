// Package config provides YAML configuration for the flight scraper.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sabbir-hossain/flight-scraper/models"
)

// Configuration validation errors.
var (
	ErrMissingURL               = errors.New("search.url is required")
	ErrMissingOrigin            = errors.New("search.origin is required")
	ErrNoDestinations           = errors.New("search.destinations must list at least one airport")
	ErrInvalidDaysAhead         = errors.New("search.days_ahead must be non-negative")
	ErrInvalidTripLength        = errors.New("search.trip_length_days must be non-negative")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidPageTimeout       = errors.New("browser.page_timeout_sec must be at least 1")
	ErrInvalidWaitTimeout       = errors.New("browser.wait_timeout_sec must be at least 1")
	ErrInvalidResultsTimeout    = errors.New("browser.results_timeout_sec must be at least 1")
	ErrInvalidTopN              = errors.New("report.top_n must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'console' or 'json'")
)

// Config represents the complete scraper configuration.
type Config struct {
	Search        SearchConfig    `yaml:"search"`
	Browser       BrowserConfig   `yaml:"browser"`
	Retry         RetryPolicy     `yaml:"retry"`
	Report        ReportConfig    `yaml:"report"`
	Artifacts     ArtifactsConfig `yaml:"artifacts"`
	Logging       LoggingConfig   `yaml:"logging"`
	RouteDelaySec int             `yaml:"route_delay_sec"`
}

// SearchConfig defines which routes to search and on which dates.
type SearchConfig struct {
	URL            string   `yaml:"url"`
	Origin         string   `yaml:"origin"`
	Destinations   []string `yaml:"destinations"`
	DaysAhead      int      `yaml:"days_ahead"`
	TripLengthDays int      `yaml:"trip_length_days"`
}

// BrowserConfig contains browser session settings.
type BrowserConfig struct {
	Headless          bool `yaml:"headless"`
	PageTimeoutSec    int  `yaml:"page_timeout_sec"`
	WaitTimeoutSec    int  `yaml:"wait_timeout_sec"`
	ResultsTimeoutSec int  `yaml:"results_timeout_sec"`
}

// PageTimeout bounds full page loads.
func (b BrowserConfig) PageTimeout() time.Duration {
	return time.Duration(b.PageTimeoutSec) * time.Second
}

// WaitTimeout bounds individual element waits.
func (b BrowserConfig) WaitTimeout() time.Duration {
	return time.Duration(b.WaitTimeoutSec) * time.Second
}

// ResultsTimeout bounds the wait for result rows to render.
func (b BrowserConfig) ResultsTimeout() time.Duration {
	return time.Duration(b.ResultsTimeoutSec) * time.Second
}

// RetryPolicy defines per-route retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
}

// Delay returns the backoff before the given retry. The first retry
// (attempt 1) waits the initial delay; each further retry multiplies it,
// capped at MaxDelayMs when set.
func (r RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	d := float64(r.InitialDelayMs) * math.Pow(r.BackoffMultiplier, float64(attempt-1))
	if r.MaxDelayMs > 0 && d > float64(r.MaxDelayMs) {
		d = float64(r.MaxDelayMs)
	}

	return time.Duration(d) * time.Millisecond
}

// ReportConfig defines report behavior.
type ReportConfig struct {
	TopN int `yaml:"top_n"`
}

// ArtifactsConfig controls failure diagnostics. An empty dir disables
// screenshot and page-source capture.
type ArtifactsConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration, matching the routes the
// tool was written for.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			URL:            "https://www.cleartrip.com/flights",
			Origin:         "BLR",
			Destinations:   []string{"DEL", "CCU", "MAA", "HYD"},
			DaysAhead:      1,
			TripLengthDays: 4,
		},
		Browser: BrowserConfig{
			Headless:          true,
			PageTimeoutSec:    90,
			WaitTimeoutSec:    5,
			ResultsTimeoutSec: 30,
		},
		Retry: RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        10000,
			BackoffMultiplier: 2.0,
		},
		Report:        ReportConfig{TopN: 5},
		Artifacts:     ArtifactsConfig{Dir: "artifacts"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		RouteDelaySec: 2,
	}
}

// LoadConfig loads configuration from a YAML file, applying defaults for
// anything the file leaves unset.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Search.URL) == "" {
		return ErrMissingURL
	}

	if strings.TrimSpace(c.Search.Origin) == "" {
		return ErrMissingOrigin
	}

	if len(c.Search.Destinations) == 0 {
		return ErrNoDestinations
	}

	if c.Search.DaysAhead < 0 {
		return ErrInvalidDaysAhead
	}

	if c.Search.TripLengthDays < 0 {
		return ErrInvalidTripLength
	}

	if c.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Browser.PageTimeoutSec < 1 {
		return ErrInvalidPageTimeout
	}

	if c.Browser.WaitTimeoutSec < 1 {
		return ErrInvalidWaitTimeout
	}

	if c.Browser.ResultsTimeoutSec < 1 {
		return ErrInvalidResultsTimeout
	}

	if c.Report.TopN < 1 {
		return ErrInvalidTopN
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return ErrInvalidLogFormat
	}

	return nil
}

// Routes expands the configured origin and destinations into the list of
// searches to run, with dates computed relative to now.
func (c *Config) Routes(now time.Time) []models.Route {
	departure := now.AddDate(0, 0, c.Search.DaysAhead)

	var ret time.Time
	if c.Search.TripLengthDays > 0 {
		ret = departure.AddDate(0, 0, c.Search.TripLengthDays)
	}

	routes := make([]models.Route, 0, len(c.Search.Destinations))
	for _, dest := range c.Search.Destinations {
		routes = append(routes, models.Route{
			Origin:      c.Search.Origin,
			Destination: dest,
			Departure:   departure,
			Return:      ret,
		})
	}

	return routes
}
