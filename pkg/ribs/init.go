// Package ribs composes application screens into a tree of reusable units,
// each pairing a router that owns navigation, an interactor that owns
// business logic, and an optional screen.
//
// The building blocks live in subpackages: router for the unit tree and
// presentation, navigation for keeping pushed children in step with a
// platform navigation stack, workflow for multi-step deep links and
// lifecycle for activity streams and cancellation. This package holds the
// framework-wide setup: logging, assertion policy and configuration.
package ribs

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/ribs/pkg/ribs/constants"
	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
	"github.com/BurntSushi/toml"
)

// Options configures the ribs framework.
type Options struct {
	LogPath          string `toml:"log_path"`          // Full path for log file including filename (creates parent directories)
	LogLevel         string `toml:"log_level"`         // Application logger level: debug, info, warn, error
	InternalLogLevel string `toml:"internal_log_level"` // Framework logger level; defaults to error, debug in dev mode
	StrictAssertions *bool  `toml:"strict_assertions"` // Panic on programmer errors; defaults to the environment
}

// LoadOptions reads Options from a TOML file.
func LoadOptions(path string) (Options, error) {
	var options Options
	if _, err := toml.DecodeFile(path, &options); err != nil {
		return Options{}, NewConfigError("load_options", err)
	}
	return options, nil
}

// Init applies options. Call it before creating routers so every logger
// picks up the configured output.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	level := options.LogLevel
	if env := os.Getenv(constants.LogLevelEnvVar); env != "" {
		level = env
	}
	if level != "" {
		internal.SetRawLogLevel(level)
	}

	switch {
	case options.InternalLogLevel != "":
		internal.SetInternalLogLevel(internal.ParseLevel(options.InternalLogLevel))
	case constants.IsDevMode():
		internal.SetInternalLogLevel(slog.LevelDebug)
	default:
		internal.SetInternalLogLevel(slog.LevelError)
	}

	if options.StrictAssertions != nil {
		internal.SetStrictAssertions(*options.StrictAssertions)
	} else {
		internal.SetStrictAssertions(constants.IsStrictAssertions())
	}
}

// Close releases the log file, if one was opened.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetInternalLogLevel sets the level of the framework's own logger.
func SetInternalLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}

// SetStrictAssertions toggles whether programmer errors panic and returns the
// previous setting.
func SetStrictAssertions(enabled bool) bool {
	return internal.SetStrictAssertions(enabled)
}
