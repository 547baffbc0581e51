// Package observability holds Prometheus collectors and tracing setup.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "szlak_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "szlak_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// AuthFailures counts rejected requests by internal failure cause.
	// Externally every cause is the same 401; this is where the distinction
	// surfaces.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "szlak_auth_failures_total",
		Help: "Total authentication failures by cause",
	}, []string{"cause"})

	// Registrations counts account registrations by outcome.
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "szlak_registrations_total",
		Help: "Total registration attempts by outcome",
	}, []string{"outcome"})

	// ProgressUpserts counts progress writes.
	ProgressUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "szlak_progress_upserts_total",
		Help: "Total progress upserts",
	})

	// RecommendationsServed records how many activities each onboarding
	// recommendation returned.
	RecommendationsServed = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "szlak_recommendations_served",
		Help:    "Number of activities returned per onboarding recommendation",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})
)

// TrackQuery returns a function that records query latency when called
// (typically deferred).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
