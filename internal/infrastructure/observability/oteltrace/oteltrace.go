package oteltrace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zhima-Mochi/minishop-console/internal/observability"
)

const defaultName = "minishop"

type tracer struct{ t trace.Tracer }

// New returns a tracer from the global otel provider. Spans are no-ops until a
// real provider is installed with otel.SetTracerProvider.
func New(name string) observability.Tracer {
	if name == "" {
		name = defaultName
	}
	return &tracer{t: otel.Tracer(name)}
}

// NewFromProvider is like New but uses tp instead of the global provider.
func NewFromProvider(tp trace.TracerProvider, name string) observability.Tracer {
	if tp == nil {
		return New(name)
	}
	if name == "" {
		name = defaultName
	}
	return &tracer{t: tp.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
