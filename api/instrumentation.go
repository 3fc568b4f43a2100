package api

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mnorrell/shopfront/core"
)

const meterName = "github.com/mnorrell/shopfront/api"

// clientMetrics emits OpenTelemetry metrics for the API client. All methods
// are nil-receiver safe so the client can run with telemetry disabled.
type clientMetrics struct {
	requests  metric.Int64Counter
	fallbacks metric.Int64Counter
	probes    metric.Int64Counter
	duration  metric.Float64Histogram
}

// newClientMetrics registers the client's instruments against the global
// meter provider. The embedding process decides which exporter (if any) is
// installed; without one, these are no-ops.
func newClientMetrics(c *Client) *clientMetrics {
	meter := otel.Meter(meterName)
	m := &clientMetrics{}

	var err error
	if m.requests, err = meter.Int64Counter("shopfront.api.requests",
		metric.WithDescription("Live backend requests by operation and outcome")); err != nil {
		c.logger.Warn("Failed to create request counter", map[string]interface{}{
			"operation": "metrics_init",
			"error":     err.Error(),
		})
	}
	if m.fallbacks, err = meter.Int64Counter("shopfront.api.mock_fallbacks",
		metric.WithDescription("Requests served from the mock dataset")); err != nil {
		c.logger.Warn("Failed to create fallback counter", map[string]interface{}{
			"operation": "metrics_init",
			"error":     err.Error(),
		})
	}
	if m.probes, err = meter.Int64Counter("shopfront.api.probes",
		metric.WithDescription("Backend availability probes")); err != nil {
		c.logger.Warn("Failed to create probe counter", map[string]interface{}{
			"operation": "metrics_init",
			"error":     err.Error(),
		})
	}
	if m.duration, err = meter.Float64Histogram("shopfront.api.request_duration",
		metric.WithDescription("Live request duration in milliseconds"),
		metric.WithUnit("ms")); err != nil {
		c.logger.Warn("Failed to create duration histogram", map[string]interface{}{
			"operation": "metrics_init",
			"error":     err.Error(),
		})
	}

	if _, err = meter.Int64ObservableGauge("shopfront.api.backend_available",
		metric.WithDescription("Backend availability as last determined (1=available, 0=unavailable)"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			if c.Available() {
				observer.Observe(1)
			} else {
				observer.Observe(0)
			}
			return nil
		})); err != nil {
		c.logger.Warn("Failed to register availability gauge", map[string]interface{}{
			"operation": "metrics_init",
			"error":     err.Error(),
		})
	}

	return m
}

func (m *clientMetrics) recordRequest(ctx context.Context, op Operation, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		if _, ok := core.IsHTTPError(err); ok {
			outcome = "rejected"
		} else {
			outcome = "transport_error"
		}
	}

	attrs := metric.WithAttributes(
		attribute.String("op", op.String()),
		attribute.String("outcome", outcome),
	)
	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
	}
}

func (m *clientMetrics) recordFallback(ctx context.Context, op Operation) {
	if m == nil || m.fallbacks == nil {
		return
	}
	m.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op.String())))
}

func (m *clientMetrics) recordProbe(ctx context.Context) {
	if m == nil || m.probes == nil {
		return
	}
	m.probes.Add(ctx, 1)
}
