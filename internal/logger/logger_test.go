package logger_test

import (
	"bytes"
	"testing"

	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		want  logger.LogLevel
		valid bool
	}{
		{"debug", logger.DebugLevel, true},
		{"INFO", logger.InfoLevel, true},
		{"warning", logger.WarnLevel, true},
		{"warn", logger.WarnLevel, true},
		{"error", logger.ErrorLevel, true},
		{"loud", logger.WarnLevel, false},
	}

	for _, tt := range tests {
		got, ok := logger.ParseLevel(tt.name)
		assert.Equal(t, tt.want, got, tt.name)
		assert.Equal(t, tt.valid, ok, tt.name)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, logger.WarnLevel)
	t.Cleanup(func() { logger.SetLogLevel(logger.WarnLevel) })

	logger.Debug().Msg("hidden")
	logger.Warn().Str("path", "/tmp/x").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), `"path":"/tmp/x"`)
}

func TestErrorWithCode(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, logger.DebugLevel)
	t.Cleanup(func() { logger.SetLogLevel(logger.WarnLevel) })

	err := errors.New().New(errors.ErrReadConfig)
	logger.Default().ErrorWithCode(err).Msg("config")

	assert.Contains(t, buf.String(), `"error_code":"read_config_failed"`)
}
