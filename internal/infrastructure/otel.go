package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"picklist/internal/config"
)

const (
	ServiceName    = "picklist-generator"
	ServiceVersion = "1.0.0"
	MeterName      = "picklist"
)

// Telemetry holds the OpenTelemetry providers and the batch counters the
// runner records against. With telemetry disabled every operation is a no-op.
type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider

	Tracer trace.Tracer
	Meter  metric.Meter

	FilesProcessed metric.Int64Counter
	FilesSkipped   metric.Int64Counter
	FactsEmitted   metric.Int64Counter
	ReportsWritten metric.Int64Counter
}

// InitializeTelemetry sets up tracing and metrics per configuration.
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	t := &Telemetry{
		Tracer: noop.NewTracerProvider().Tracer(MeterName),
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if cfg.EnableTracing && cfg.TraceExporter == "stdout" {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		t.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(t.tracerProvider)
		t.Tracer = t.tracerProvider.Tracer(MeterName)
		logger.Info("Tracing enabled", slog.String("exporter", cfg.TraceExporter))
	}

	if cfg.EnableMetrics {
		t.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithResource(res))
		otel.SetMeterProvider(t.meterProvider)
	}
	t.Meter = otel.GetMeterProvider().Meter(MeterName)

	if err := t.createCounters(); err != nil {
		return nil, fmt.Errorf("failed to create counters: %w", err)
	}

	return t, nil
}

func (t *Telemetry) createCounters() error {
	var err error
	if t.FilesProcessed, err = t.Meter.Int64Counter("picklist.files.processed",
		metric.WithDescription("Input files processed to completion")); err != nil {
		return err
	}
	if t.FilesSkipped, err = t.Meter.Int64Counter("picklist.files.skipped",
		metric.WithDescription("Input files skipped with a recoverable error")); err != nil {
		return err
	}
	if t.FactsEmitted, err = t.Meter.Int64Counter("picklist.facts.emitted",
		metric.WithDescription("Long-relation facts emitted by the reshaper")); err != nil {
		return err
	}
	if t.ReportsWritten, err = t.Meter.Int64Counter("picklist.reports.written",
		metric.WithDescription("Report workbooks written")); err != nil {
		return err
	}
	return nil
}

// StartFileSpan begins a span covering one input file's processing.
func (t *Telemetry) StartFileSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return t.Tracer.Start(ctx, "process_file",
		trace.WithAttributes(attribute.String("input.file", name)),
		trace.WithSpanKind(trace.SpanKindInternal))
}

// Shutdown flushes and stops the providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	if t.meterProvider != nil {
		return t.meterProvider.Shutdown(ctx)
	}
	return nil
}
