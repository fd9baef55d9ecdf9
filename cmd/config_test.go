package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "mockhoist", configBaseName)
	assert.Equal(t, "mockhoist.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "no-cache", noCacheFlagName)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "parallel", runParallelFlagName)
	assert.Equal(t, "run.parallel", runParallelConfigKey)
	assert.Equal(t, "run.write", runWriteConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "paths.extensions", extensionsConfigKey)
	assert.Equal(t, "paths.tests_only", testsOnlyConfigKey)
	assert.Equal(t, ".mockhoist-reports", defaultReportsDir)
	assert.Equal(t, false, defaultNoCache)
	assert.Equal(t, 1, defaultRunParallel)
	assert.Equal(t, "MOCKHOIST", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"warn+2", slog.LevelWarn + 2},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestRotatedLogFile(t *testing.T) {
	logFile := rotatedLogFile("custom.log")
	assert.Equal(t, "custom.log", logFile.Filename)
	assert.Equal(t, configDefaults[logMaxSizeKey], logFile.MaxSize)
	assert.Equal(t, configDefaults[logMaxBackupsKey], logFile.MaxBackups)
	assert.True(t, logFile.Compress)

	assert.Equal(t, defaultLogFilename, rotatedLogFile("  ").Filename)
}

func TestConfigureLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "mockhoist.log")

	configureLogger(logPath, true)
	require.NotNil(t, globalLogger)

	slog.Debug("Hoisted", "path", "a.test.js")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "msg=Hoisted"))
	assert.Contains(t, string(data), "path=a.test.js")

	configureLogger(logPath, false)
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelDebug))
}
