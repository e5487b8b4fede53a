package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LoginAttempts counts login attempts by outcome
	// ("success", "unknown_username", "wrong_password").
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_login_attempts_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// RegistrationsTotal counts registration attempts by outcome
	// ("success", "validation", "conflict").
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_registrations_total",
		Help: "Total number of registration attempts by outcome",
	}, []string{"outcome"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
