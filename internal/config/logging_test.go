package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/config"
)

func readLogFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // G304: Test path from t.TempDir()
	require.NoError(t, err)
	return string(data)
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected config.LogLevel
	}{
		{"off", config.LogLevelOff},
		{"NONE", config.LogLevelOff},
		{"error", config.LogLevelError},
		{"  debug  ", config.LogLevelDebug},
		{"warn", config.LogLevelError},
		{"", config.LogLevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, config.ParseLogLevel(tt.input))
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "off", config.LogLevelOff.String())
	assert.Equal(t, "error", config.LogLevelError.String())
	assert.Equal(t, "debug", config.LogLevelDebug.String())
	assert.Equal(t, "error", config.LogLevel(99).String())
}

func TestLogger_LevelFiltering(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "nested", "test.log")

	logger, err := config.NewLogger(config.LogLevelError, logPath)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.Debug("hidden %d", 1)
	logger.Error("visible %d", 2)

	content := readLogFile(t, logPath)
	assert.NotContains(t, content, "hidden 1")
	assert.Contains(t, content, `level=ERROR msg="visible 2"`)
}

func TestLogger_SetLevel(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := config.NewLogger(config.LogLevelError, logPath)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.SetLevel(config.LogLevelDebug)
	assert.Equal(t, config.LogLevelDebug, logger.Level())

	logger.Debug("now visible")
	logger.DebugAttrs("structured debug", slog.String("wallet", "Sui Wallet"))

	content := readLogFile(t, logPath)
	assert.Contains(t, content, `level=DEBUG msg="now visible"`)
	assert.Contains(t, content, `level=DEBUG msg="structured debug" wallet="Sui Wallet"`)

	// Both forms share the slog line layout.
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		assert.True(t, strings.HasPrefix(line, "time="), line)
	}
}

func TestLogger_ErrorAttrs(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := config.NewLogger(config.LogLevelError, logPath)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.ErrorAttrs("connect failed", slog.String("code", "CONNECTION_FAILED"), slog.Bool("swallowed", true))
	logger.DebugAttrs("not written", slog.String("key", "value"))

	content := readLogFile(t, logPath)
	assert.Contains(t, content, "connect failed")
	assert.Contains(t, content, "CONNECTION_FAILED")
	assert.Contains(t, content, "swallowed=true")
	assert.NotContains(t, content, "not written")
}

func TestLogger_OffCreatesNoFile(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := config.NewLogger(config.LogLevelOff, logPath)
	require.NoError(t, err)
	logger.Error("dropped")
	require.NoError(t, logger.Close())

	_, statErr := os.Stat(logPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNullLogger(t *testing.T) {
	t.Parallel()
	logger := config.NullLogger()

	logger.Debug("ignored")
	logger.Error("ignored")
	logger.ErrorAttrs("ignored", slog.String("k", "v"))
	assert.Nil(t, logger.Structured())
	assert.NoError(t, logger.Close())
}
