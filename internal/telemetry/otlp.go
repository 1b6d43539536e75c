package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// exportTimeout bounds a metrics push; the hook exits right after Shutdown.
const exportTimeout = 2 * time.Second

// otlpTarget is where metrics are pushed.
type otlpTarget struct {
	host     string // host:port
	path     string // empty keeps the exporter default (/v1/metrics)
	insecure bool
}

// parseOTLPEndpoint accepts either a bare host:port (plain HTTP, as local
// collectors are usually run) or a full http(s) URL.
func parseOTLPEndpoint(endpoint string) (otlpTarget, error) {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.Contains(endpoint, "://") {
		if endpoint == "" {
			return otlpTarget{}, fmt.Errorf("empty OTLP endpoint")
		}
		return otlpTarget{host: strings.TrimSuffix(endpoint, "/"), insecure: true}, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return otlpTarget{}, fmt.Errorf("parse OTLP endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return otlpTarget{}, fmt.Errorf("OTLP endpoint %q has no host", endpoint)
	}

	target := otlpTarget{host: u.Host}
	switch u.Scheme {
	case "http":
		target.insecure = true
	case "https":
	default:
		return otlpTarget{}, fmt.Errorf("OTLP endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	if p := strings.TrimSuffix(u.Path, "/"); p != "" {
		target.path = p
	}
	return target, nil
}

func buildOTLPMetricExporter(ctx context.Context, endpoint string) (sdkmetric.Exporter, error) {
	target, err := parseOTLPEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(target.host),
		otlpmetrichttp.WithTimeout(exportTimeout),
	}
	if target.path != "" {
		opts = append(opts, otlpmetrichttp.WithURLPath(target.path))
	}
	if target.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	return otlpmetrichttp.New(ctx, opts...)
}
