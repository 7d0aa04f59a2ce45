package infra

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.uber.org/fx"

	"urlate.dev/backend/internal/app/appconfig"
	"urlate.dev/backend/internal/pkg/bininfo"
	"urlate.dev/backend/internal/pkg/observability"
)

// TracerProvider installs the global tracer provider. It returns nil when tracing
// is disabled, leaving the otel no-op provider in place.
func TracerProvider(conf *appconfig.Config, lc fx.Lifecycle) (*sdktrace.TracerProvider, error) {
	if !conf.TracingEnabled {
		log.Info().
			Str("evt.name", "infra.tracing.disabled").
			Msg("tracing is disabled")
		return nil, nil
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(conf.TracingSampleRate))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(observability.ServiceName),
			semconv.ServiceVersion(bininfo.Version),
			attribute.Bool("service.dev_mode", conf.DevMode),
		)),
	}

	for _, name := range conf.TracingExporters {
		var (
			exporter sdktrace.SpanExporter
			err      error
		)
		switch name {
		case "otlp":
			exporter, err = otlptracegrpc.New(context.Background())
		case "stdout":
			exporter, err = stdouttrace.New(stdouttrace.WithWriter(os.Stdout), stdouttrace.WithPrettyPrint())
		default:
			return nil, errors.Errorf("infra: tracing: unknown exporter %q", name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "infra: tracing: failed to create %s exporter", name)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	log.Info().
		Str("evt.name", "infra.tracing.enabled").
		Strs("exporters", conf.TracingExporters).
		Float64("sample_rate", conf.TracingSampleRate).
		Msg("tracing is enabled")

	return tp, nil
}
