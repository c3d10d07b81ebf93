// Package telemetry installs an OTLP trace exporter when the standard
// OpenTelemetry environment variables ask for one.
package telemetry

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const (
	endpointEnv        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	serviceNameEnv     = "OTEL_SERVICE_NAME"
	defaultServiceName = "fledgling"
)

// Provider wraps the SDK tracer provider installed as the global provider.
type Provider struct {
	provider *sdktrace.TracerProvider
	service  string
}

// Setup creates an OTLP/HTTP exporter if OTEL_EXPORTER_OTLP_ENDPOINT is set
// and registers it globally. It returns nil when tracing is not configured,
// leaving the no-op global provider in place.
func Setup(ctx context.Context, logger hclog.Logger) (*Provider, error) {
	endpoint := strings.TrimSpace(os.Getenv(endpointEnv))
	if endpoint == "" {
		return nil, nil
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var opts []otlptracehttp.Option
	if strings.Contains(endpoint, "://") {
		opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
	} else {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	serviceName := strings.TrimSpace(os.Getenv(serviceNameEnv))
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	logger.Info("tracing enabled", "endpoint", endpoint, "service", serviceName)
	return &Provider{provider: provider, service: serviceName}, nil
}

// ServiceName returns the service.name resource attribute in use.
func (p *Provider) ServiceName() string {
	if p == nil {
		return ""
	}
	return p.service
}

// Shutdown flushes and closes the exporter. It is safe on a nil Provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
