// Package telemetry installs the OpenTelemetry tracer provider used by the
// server's spans.
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// Config selects the OTLP/HTTP collector.
type Config struct {
	// Endpoint is host:port of the collector. Tracing is disabled when
	// empty.
	Endpoint string

	// Insecure disables TLS towards the collector.
	Insecure bool

	ServiceName string
}

// ShutdownFunc flushes pending spans and stops the exporter.
type ShutdownFunc func(context.Context) error

// Setup creates an OTLP exporter and installs a batching tracer provider
// as the global provider. With no endpoint it installs nothing and returns
// a no-op ShutdownFunc.
func Setup(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "proptree"
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
	otel.SetTracerProvider(provider)
	slog.Default().With("component", "telemetry").Info("tracing enabled",
		"endpoint", cfg.Endpoint,
		"service", serviceName,
	)

	return provider.Shutdown, nil
}
