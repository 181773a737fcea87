package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GenerationRequestsTotal   metric.Int64Counter
	GenerationFailuresTotal   metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	ImageFallbacksTotal       metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// Get returns the global metrics instruments, creating them on first use
// from the globally configured MeterProvider. Before the SDK provider is
// installed this yields no-op instruments, which keeps tests quiet.
func Get() *AppMetrics {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-trip-planner")
		var err error
		m := &AppMetrics{}

		m.GenerationRequestsTotal, err = meter.Int64Counter(
			"trip_generation_requests_total",
			metric.WithDescription("Total number of trip generation requests started"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_generation_requests_total: %v", err)
		}

		m.GenerationFailuresTotal, err = meter.Int64Counter(
			"trip_generation_failures_total",
			metric.WithDescription("Total number of itinerary generation failures"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_generation_failures_total: %v", err)
		}

		m.GenerationDurationSeconds, err = meter.Float64Histogram(
			"trip_generation_duration_seconds",
			metric.WithDescription("End-to-end duration of successful generation requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_generation_duration_seconds: %v", err)
		}

		m.ImageFallbacksTotal, err = meter.Int64Counter(
			"trip_image_fallbacks_total",
			metric.WithDescription("Total number of image generation failures absorbed with the placeholder"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_image_fallbacks_total: %v", err)
		}

		appMetrics = m
	})
	return appMetrics
}
