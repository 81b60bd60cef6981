package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger returns a context carrying logger. A nil logger stores the
// default one.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the context's logger, or Default.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, _ := ctx.Value(loggerKey{}).(*zerolog.Logger); l != nil {
			return l
		}
	}
	return Default()
}

// With returns a context whose logger carries key=value.
func With(ctx context.Context, key, value string) context.Context {
	l := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &l)
}

// WithComponent tags the context logger with a component type id.
func WithComponent(ctx context.Context, typeID string) context.Context {
	return With(ctx, "component_id", typeID)
}

// WithSource tags the context logger with a source kind.
func WithSource(ctx context.Context, source string) context.Context {
	return With(ctx, "source", source)
}

// WithOperation tags the context logger with the running operation.
func WithOperation(ctx context.Context, operation string) context.Context {
	return With(ctx, "operation", operation)
}
