// Package observability holds Prometheus metric vectors and OpenTelemetry
// tracer bootstrap for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notevault_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// NoteOperations counts note operations by kind and outcome.
	NoteOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notevault_note_operations_total",
		Help: "Total number of note operations by kind and outcome",
	}, []string{"operation", "outcome"})

	// NoteQueryLatency records note query latency by operation.
	NoteQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notevault_note_query_latency_seconds",
		Help:    "Note query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// ObserveNoteOperation records one completed note operation.
func ObserveNoteOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	NoteOperations.WithLabelValues(operation, outcome).Inc()
}
