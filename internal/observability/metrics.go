// Package observability provides application metrics and distributed tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostStatusTransitions counts post lifecycle transitions by target status and outcome.
	PostStatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_post_status_transitions_total",
		Help: "Total number of post lifecycle transitions by target status and outcome",
	}, []string{"to_status", "outcome"})

	// AuthAttempts counts authentication attempts by kind and outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_auth_attempts_total",
		Help: "Total number of authentication attempts by kind and outcome",
	}, []string{"kind", "outcome"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordTransition increments the lifecycle transition counter.
func RecordTransition(toStatus, outcome string) {
	PostStatusTransitions.WithLabelValues(toStatus, outcome).Inc()
}

// RecordAuthAttempt increments the authentication attempt counter.
func RecordAuthAttempt(kind, outcome string) {
	AuthAttempts.WithLabelValues(kind, outcome).Inc()
}
