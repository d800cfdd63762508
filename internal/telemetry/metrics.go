package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/WailSalutem-Health-Care/speech-therapy-service"

// Metrics holds the service's OpenTelemetry instruments. Without a configured
// meter provider the global no-op provider makes every record a no-op.
type Metrics struct {
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	ClientOperationsTotal    metric.Int64Counter
	TherapistOperationsTotal metric.Int64Counter
	DashboardQueryDuration   metric.Float64Histogram
}

// InitMetrics creates every instrument from the global meter provider.
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}

	if m.HTTPDurationMs, err = meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if m.ClientOperationsTotal, err = meter.Int64Counter(
		"client_operations_total",
		metric.WithDescription("Total number of client record operations"),
		metric.WithUnit("{operation}"),
	); err != nil {
		return nil, err
	}

	if m.TherapistOperationsTotal, err = meter.Int64Counter(
		"therapist_operations_total",
		metric.WithDescription("Total number of therapist operations"),
		metric.WithUnit("{operation}"),
	); err != nil {
		return nil, err
	}

	if m.DashboardQueryDuration, err = meter.Float64Histogram(
		"dashboard_query_duration_ms",
		metric.WithDescription("Dashboard statistics computation time in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	attrs := metric.WithAttributes(
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	)

	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPDurationMs.Record(ctx, durationMs, attrs)
}

func (m *Metrics) RecordClientOperation(ctx context.Context, operation string) {
	m.ClientOperationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

func (m *Metrics) RecordTherapistOperation(ctx context.Context, operation string) {
	m.TherapistOperationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

func (m *Metrics) RecordDashboardQuery(ctx context.Context, durationMs float64) {
	m.DashboardQueryDuration.Record(ctx, durationMs)
}
