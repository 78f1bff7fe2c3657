package mocks

import (
	"context"
	"suburban/infras/otel"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// otelImpl hands out real scopes over non-recording spans, so tests run the same
// attribute and error paths as production without a tracer provider.
type otelImpl struct {
	tracer oteltrace.Tracer
}

// NewScope implements otel.Otel.
func (o *otelImpl) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	ctx, span := o.tracer.Start(ctx, spanName)

	return ctx, otel.NewScope(span)
}

// Shutdown implements otel.Otel.
func (o *otelImpl) Shutdown(context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &otelImpl{tracer: noop.NewTracerProvider().Tracer("test")}
}
