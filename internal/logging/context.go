package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext returns the context logger, or a disabled logger when none is set.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags every log line under ctx with a component name.
func WithComponent(ctx context.Context, component string) context.Context {
	return withField(ctx, "component", component)
}

// WithProvider tags every log line under ctx with the icon provider key.
func WithProvider(ctx context.Context, provider string) context.Context {
	return withField(ctx, "provider", provider)
}

func withField(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With().Str(key, value).Logger())
}
