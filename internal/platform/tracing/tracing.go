// Package tracing installs the process-wide OpenTelemetry TracerProvider that the
// upstream API client records spans on.
package tracing

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const serviceName = "mealshare-gateway"

// Provider owns the tracer provider and its exporter.
type Provider struct {
	TracerProvider *sdktrace.TracerProvider
	// Exporting is false when spans are recorded but never leave the process.
	Exporting bool
}

// New builds a provider that batches spans to an OTLP/gRPC collector at endpoint.
// endpoint may be host:port or a URL; only the host is dialled. https endpoints use
// TLS unless insecure is set. An empty endpoint yields a provider without an exporter.
func New(ctx context.Context, endpoint string, insecure bool, env string) (*Provider, error) {
	res := resource.NewSchemaless(
		semconv.ServiceName(serviceName),
		semconv.DeploymentEnvironment(env),
	)

	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return &Provider{TracerProvider: sdktrace.NewTracerProvider(sdktrace.WithResource(res))}, nil
	}

	target, tls, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(target)}
	if insecure || !tls {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp trace exporter: %w", err)
	}

	return &Provider{
		TracerProvider: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		),
		Exporting: true,
	}, nil
}

func parseEndpoint(endpoint string) (target string, tls bool, err error) {
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid OTLP endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid OTLP endpoint %q: missing host", endpoint)
	}
	return u.Host, u.Scheme == "https", nil
}

// SetGlobal makes p the provider behind otel.Tracer.
func (p *Provider) SetGlobal() {
	otel.SetTracerProvider(p.TracerProvider)
}

// Shutdown flushes buffered spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.TracerProvider.Shutdown(ctx)
}
