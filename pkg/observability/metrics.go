package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics builds an OpenTelemetry meter provider backed by the Prometheus
// exporter and returns the HTTP handler that serves the scrape endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider, promhttp.Handler(), nil
}
