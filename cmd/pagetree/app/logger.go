package app

import (
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/pagetree/pkg/logging"
)

var knownLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger builds the CLI logger. An explicit --log-level (or
// PAGETREE_LOG_LEVEL) wins over -v and -q; with neither set the level is info.
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)
	verbose := level == "trace" || level == "debug"
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: verbose,
	})
}

func determineLogLevel(config *Config) string {
	switch {
	case config.LogLevel != "":
		if slices.Contains(knownLevels, config.LogLevel) {
			return config.LogLevel
		}
		warnf("unknown log level %q, falling back to info", config.LogLevel)
		return "info"
	case config.Quiet:
		if config.Verbose {
			warnf("--verbose and --quiet both set, --quiet wins")
		}
		return "warn"
	case config.Verbose:
		return "debug"
	}
	return "info"
}

// warnf reports a logger setup problem before any logger exists.
func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "pagetree: "+format+"\n", args...)
}
