package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
search:
  origin: DAC
  destinations: [DXB]
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "DAC", cfg.Search.Origin)
	assert.Equal(t, []string{"DXB"}, cfg.Search.Destinations)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unset fields keep their defaults.
	assert.Equal(t, "https://www.cleartrip.com/flights", cfg.Search.URL)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 5, cfg.Report.TopN)
	assert.True(t, cfg.Browser.Headless)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfig(t, "search: [not a map")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "missing url", mutate: func(c *Config) { c.Search.URL = " " }, wantErr: ErrMissingURL},
		{name: "missing origin", mutate: func(c *Config) { c.Search.Origin = "" }, wantErr: ErrMissingOrigin},
		{name: "no destinations", mutate: func(c *Config) { c.Search.Destinations = nil }, wantErr: ErrNoDestinations},
		{name: "negative days ahead", mutate: func(c *Config) { c.Search.DaysAhead = -1 }, wantErr: ErrInvalidDaysAhead},
		{name: "negative trip length", mutate: func(c *Config) { c.Search.TripLengthDays = -2 }, wantErr: ErrInvalidTripLength},
		{name: "zero attempts", mutate: func(c *Config) { c.Retry.MaxAttempts = 0 }, wantErr: ErrInvalidMaxAttempts},
		{name: "negative delay", mutate: func(c *Config) { c.Retry.InitialDelayMs = -1 }, wantErr: ErrInvalidInitialDelay},
		{name: "multiplier below one", mutate: func(c *Config) { c.Retry.BackoffMultiplier = 0.5 }, wantErr: ErrInvalidBackoffMultiplier},
		{name: "zero page timeout", mutate: func(c *Config) { c.Browser.PageTimeoutSec = 0 }, wantErr: ErrInvalidPageTimeout},
		{name: "zero wait timeout", mutate: func(c *Config) { c.Browser.WaitTimeoutSec = 0 }, wantErr: ErrInvalidWaitTimeout},
		{name: "zero results timeout", mutate: func(c *Config) { c.Browser.ResultsTimeoutSec = 0 }, wantErr: ErrInvalidResultsTimeout},
		{name: "zero top n", mutate: func(c *Config) { c.Report.TopN = 0 }, wantErr: ErrInvalidTopN},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: ErrInvalidLogLevel},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestRetryPolicyDelay(t *testing.T) {
	policy := RetryPolicy{
		InitialDelayMs:    500,
		MaxDelayMs:        10000,
		BackoffMultiplier: 2.0,
	}

	assert.Equal(t, 500*time.Millisecond, policy.Delay(1))
	assert.Equal(t, time.Second, policy.Delay(2))
	assert.Equal(t, 2*time.Second, policy.Delay(3))
	assert.Equal(t, 10*time.Second, policy.Delay(10), "capped at max delay")
	assert.Equal(t, 500*time.Millisecond, policy.Delay(0), "clamped to first attempt")
}

func TestRoutes(t *testing.T) {
	cfg := Default()
	cfg.Search.Origin = "BLR"
	cfg.Search.Destinations = []string{"DEL", "CCU"}
	cfg.Search.DaysAhead = 1
	cfg.Search.TripLengthDays = 4

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	routes := cfg.Routes(now)

	require.Len(t, routes, 2)
	assert.Equal(t, "BLR", routes[0].Origin)
	assert.Equal(t, "DEL", routes[0].Destination)
	assert.Equal(t, "CCU", routes[1].Destination)
	assert.Equal(t, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), routes[0].Departure)
	assert.Equal(t, time.Date(2026, 9, 4, 12, 0, 0, 0, time.UTC), routes[0].Return)
}

func TestRoutesOneWay(t *testing.T) {
	cfg := Default()
	cfg.Search.TripLengthDays = 0

	routes := cfg.Routes(time.Now())
	require.NotEmpty(t, routes)
	assert.True(t, routes[0].Return.IsZero())
}
