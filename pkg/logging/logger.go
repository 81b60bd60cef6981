// Package logging provides structured logging for pagetree using zerolog.
// Console output is used on terminals and JSON everywhere else.
//
// Loggers travel through context.Context: the client attaches its logger
// and each stage adds fields.
//
//	ctx = logging.WithOperation(ctx, "compile")
//	logging.FromContext(ctx).Debug().Str("component_id", id).Msg("Resolved slot")
package logging

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// global holds the process-wide fallback logger.
var global atomic.Pointer[zerolog.Logger]

func init() {
	l := NewLoggerFromConfig(&Config{
		Level:  os.Getenv("PAGETREE_LOG_LEVEL"),
		Format: os.Getenv("PAGETREE_LOG_FORMAT"),
		// NO_COLOR is a cross-tool convention, see no-color.org
		NoColor: os.Getenv("NO_COLOR") != "",
	})
	global.Store(&l)
}

// Default returns the process-wide logger used when a context carries none.
func Default() *zerolog.Logger {
	return global.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	global.Store(&logger)
}

// New creates a JSON logger writing to w at the global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.GlobalLevel()).With().Timestamp().Logger()
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event { return Default().Debug() }

// Warn starts a warning event on the default logger.
func Warn() *zerolog.Event { return Default().Warn() }

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
