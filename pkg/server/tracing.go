package server

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTracerName is the tracer used when Config.TracerName is empty.
const DefaultTracerName = "proptree/server"

// tracer wraps an otel tracer resolved from the global provider. Without a
// configured provider the spans are no-ops.
type tracer struct {
	t trace.Tracer
}

func newTracer(name string) tracer {
	if name == "" {
		name = DefaultTracerName
	}
	return tracer{t: otel.Tracer(name)}
}

// span runs fn inside a span called name and records its error.
func (tr tracer) span(ctx context.Context, name string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := tr.t.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if kind := errorKind(err); kind != "other" {
			span.SetAttributes(attribute.String("proptree.error_kind", kind))
		}
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return err
}
