package anthropic

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type anthropicMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var metricsOnce sync.Once
var metricsInit = false
var metrics anthropicMetrics

// ensureMetrics initializes the instruments once; concurrent first requests
// must not race on the package state.
func ensureMetrics() {
	metricsOnce.Do(func() {
		meter := otel.Meter("github.com/zatekoja/facilityqualityinsights/anthropic")

		requestCount, err := meter.Int64Counter(
			"ai.anthropic.request.count",
			metric.WithDescription("Number of Anthropic requests"),
		)
		if err != nil {
			return
		}
		requestDuration, err := meter.Float64Histogram(
			"ai.anthropic.request.duration",
			metric.WithDescription("Anthropic request duration in milliseconds"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return
		}
		requestErrors, err := meter.Int64Counter(
			"ai.anthropic.request.errors",
			metric.WithDescription("Number of Anthropic request errors"),
		)
		if err != nil {
			return
		}

		metrics = anthropicMetrics{
			requestCount:    requestCount,
			requestDuration: requestDuration,
			requestErrors:   requestErrors,
		}
		metricsInit = true
	})
}

func recordAnthropicMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureMetrics()
	if !metricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "anthropic"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		metrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
