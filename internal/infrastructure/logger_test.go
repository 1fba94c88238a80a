package infrastructure

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtacli/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLogLevel(tt.input), tt.input)
	}
}

func TestCreateLoggerConsole(t *testing.T) {
	logger, err := createLogger(config.LoggingConfig{Level: "info", Output: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestCreateLoggerFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "dta.log")
	logger, err := createLogger(config.LoggingConfig{Level: "debug", Output: "file", FilePath: logPath})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("test entry")
	assert.FileExists(t, logPath)
	require.NoError(t, CloseLogger())
}

func TestGetLoggerFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, GetLogger())
}
