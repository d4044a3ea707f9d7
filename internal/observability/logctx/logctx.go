package logctx

import (
	"context"

	"github.com/Zhima-Mochi/minishop-console/internal/observability"
)

type loggerKey struct{}

// With stores the provided logger on the context for session- or request-scoped logging.
func With(ctx context.Context, logger observability.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// From retrieves a logger from the context if present.
func From(ctx context.Context) observability.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerKey{}).(observability.Logger)
	return logger
}

// FromOr returns the context logger when available, otherwise falls back to the supplied logger.
func FromOr(ctx context.Context, fallback observability.Logger) observability.Logger {
	if logger := From(ctx); logger != nil {
		return logger
	}
	if fallback == nil {
		return observability.NopLogger()
	}
	return fallback
}

// Enrich derives a logger carrying fields from the context logger (or base
// when the context has none) and stores it on the returned context.
func Enrich(ctx context.Context, base observability.Logger, fields ...observability.Field) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return With(ctx, FromOr(ctx, base).With(fields...))
}
