package cmd

import (
	"cmp"
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"mockhoist.dev/pkg/mockhoist/internal/adapter"
)

// Config file location. The file is optional.
const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "mockhoist"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	envPrefix = "MOCKHOIST"
)

// Command line flags.
const (
	outputFlagName      = "output"
	noCacheFlagName     = "no-cache"
	excludeFlagName     = "exclude"
	verboseFlagName     = "verbose"
	runParallelFlagName = "parallel"
	runWriteFlagName    = "write"
)

// Keys of the config file. outputFlagName and noCacheFlagName double as
// top-level keys.
const (
	runParallelConfigKey = "run.parallel"
	runWriteConfigKey    = "run.write"
	excludeConfigKey     = "paths.exclude"
	extensionsConfigKey  = "paths.extensions"
	testsOnlyConfigKey   = "paths.tests_only"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"
)

const (
	defaultReportsDir  = ".mockhoist-reports"
	defaultNoCache     = false
	defaultRunParallel = 1
	defaultRunWrite    = false
	defaultTestsOnly   = true

	defaultLogFilename = ".mockhoist.log"
	defaultLogLevel    = "info"
)

// configDefaults seeds viper before the config file and the environment
// are consulted. Sizes are in megabytes and ages in days.
var configDefaults = map[string]any{
	configVersionKey:     currentConfigVersion,
	outputFlagName:       defaultReportsDir,
	noCacheFlagName:      defaultNoCache,
	runParallelConfigKey: defaultRunParallel,
	runWriteConfigKey:    defaultRunWrite,
	excludeConfigKey:     []string{},
	extensionsConfigKey:  adapter.DefaultExtensions,
	testsOnlyConfigKey:   defaultTestsOnly,

	logFilenameKey:   defaultLogFilename,
	logLevelKey:      defaultLogLevel,
	logVerboseKey:    false,
	logMaxSizeKey:    10,
	logMaxBackupsKey: 3,
	logMaxAgeKey:     28,
	logCompressKey:   true,
}

var globalLogger *slog.Logger

func init() {
	loadConfig()
}

// loadConfig wires viper to mockhoist.yaml in the working directory and to
// MOCKHOIST_* variables, where dots and dashes of a key become underscores.
func loadConfig() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	for key, value := range configDefaults {
		viper.SetDefault(key, value)
	}

	err := viper.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		slog.Debug("Ignoring unreadable config", "file", viper.ConfigFileUsed(), "error", err)
	}
}

// parseSlogLevel accepts level names in any case, "warning", and raw
// numeric levels. Anything else yields fallback.
func parseSlogLevel(value string, fallback slog.Level) slog.Level {
	name := strings.ToLower(strings.TrimSpace(value))

	switch name {
	case "":
		return fallback
	case "warning":
		name = "warn"
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err == nil {
		return level
	}

	if n, err := strconv.Atoi(name); err == nil {
		return slog.Level(n)
	}

	return fallback
}

// configureLogger sends slog output to a rotated file. verbose forces the
// debug level over log.level.
func configureLogger(logPath string, verbose bool) {
	level := slog.LevelDebug
	if !verbose {
		level = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	handler := slog.NewTextHandler(rotatedLogFile(logPath), &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

func rotatedLogFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename: cmp.Or(
			strings.TrimSpace(path),
			strings.TrimSpace(viper.GetString(logFilenameKey)),
			defaultLogFilename,
		),
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}
}
