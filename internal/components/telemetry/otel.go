package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"catalog-backend/pkg/configutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type OtlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

type OtlpConfig struct {
	Traces  OtlpConnConfig `json:"traces"`
	Metrics OtlpConnConfig `json:"metrics"`
}

type OtelConfig struct {
	Otlp OtlpConfig `json:"otlp"`
}

// Otel holds the providers installed by SetupOtel.
type Otel struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
}

func (o Otel) Shutdown(ctx context.Context) error {
	var errlist []error
	if o.TracerProvider != nil {
		errlist = append(errlist, o.TracerProvider.Shutdown(ctx))
	}
	if o.MeterProvider != nil {
		errlist = append(errlist, o.MeterProvider.Shutdown(ctx))
	}
	return errors.Join(errlist...)
}

// SetupOtelFromEnv searches up the filesystem from the cwd to find a file
// called telemetry.json5, once found it will then use it as a config to
// setup opentelemetry. ok is false when no such file exists.
func SetupOtelFromEnv(ctx context.Context, serviceName string) (o Otel, ok bool, err error) {
	config, err := configutil.ReadRecursively[OtelConfig]("telemetry.json5")
	if errors.Is(err, os.ErrNotExist) {
		return Otel{}, false, nil
	}
	if err != nil {
		return Otel{}, false, err
	}
	o, err = SetupOtel(ctx, serviceName, config)
	return o, err == nil, err
}

func SetupOtel(ctx context.Context, serviceName string, config OtelConfig) (Otel, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return Otel{}, err
	}

	traceExporter, err := otlpTraceExporter(ctx, config.Otlp.Traces)
	if err != nil {
		return Otel{}, fmt.Errorf("trace exporter: %w", err)
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tracerProvider)

	metricExporter, err := otlpMetricExporter(ctx, config.Otlp.Metrics)
	if err != nil {
		return Otel{TracerProvider: tracerProvider}, fmt.Errorf("metric exporter: %w", err)
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(time.Second*5))),
		sdkmetric.WithResource(r),
	)
	otel.SetMeterProvider(meterProvider)

	return Otel{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
	}, nil
}

func otlpTraceExporter(ctx context.Context, c OtlpConnConfig) (sdktrace.SpanExporter, error) {
	if c.GrpcEndpoint != "" {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(c.GrpcEndpoint),
			otlptracegrpc.WithHeaders(c.Headers),
		)
	}
	return otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(c.HttpEndpoint),
		otlptracehttp.WithHeaders(c.Headers),
	)
}

func otlpMetricExporter(ctx context.Context, c OtlpConnConfig) (sdkmetric.Exporter, error) {
	if c.GrpcEndpoint != "" {
		return otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(c.GrpcEndpoint),
			otlpmetricgrpc.WithHeaders(c.Headers),
		)
	}
	return otlpmetrichttp.New(
		ctx,
		otlpmetrichttp.WithEndpointURL(c.HttpEndpoint),
		otlpmetrichttp.WithHeaders(c.Headers),
	)
}

// OtelAPI forwards every report to inner and additionally records counts
// and breakages as otel metrics.
type OtelAPI struct {
	inner   API
	counts  metric.Int64Gauge
	broken  metric.Int64Counter
	warning metric.Int64Counter
}

func NewOtelAPI(inner API) OtelAPI {
	meter := otel.Meter("catalog-backend")
	counts, _ := meter.Int64Gauge("report_count")
	broken, _ := meter.Int64Counter("report_broken")
	warning, _ := meter.Int64Counter("report_warning")
	return OtelAPI{
		inner:   inner,
		counts:  counts,
		broken:  broken,
		warning: warning,
	}
}

func (o OtelAPI) ReportBroken(id string, params ...any) {
	o.broken.Add(context.Background(), 1, metric.WithAttributes(attribute.String("id", id)))
	o.inner.ReportBroken(id, params...)
}

func (o OtelAPI) ReportWarning(id string, params ...any) {
	o.warning.Add(context.Background(), 1, metric.WithAttributes(attribute.String("id", id)))
	o.inner.ReportWarning(id, params...)
}

func (o OtelAPI) ReportDebug(msg string, params ...any) {
	o.inner.ReportDebug(msg, params...)
}

func (o OtelAPI) ReportCount(id string, count int64) {
	o.counts.Record(context.Background(), count, metric.WithAttributes(attribute.String("id", id)))
	o.inner.ReportCount(id, count)
}
