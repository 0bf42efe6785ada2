package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/sabbir-hossain/flight-scraper/config"
)

func TestNewRespectsLevel(t *testing.T) {
	log := New(config.LoggingConfig{Level: "warn", Format: "console"})

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewDefaultsToInfo(t *testing.T) {
	log := New(config.LoggingConfig{Level: "bogus", Format: "json"})

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
