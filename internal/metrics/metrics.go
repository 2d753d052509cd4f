// Package metrics exposes Prometheus collectors for backend traffic and the
// response cache.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "viuelpadel",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total number of requests issued to the webhook backend.",
		},
		[]string{"method", "endpoint", "status"},
	)

	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "viuelpadel",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of requests to the webhook backend.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
		},
		[]string{"method", "endpoint"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "viuelpadel",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Response cache lookups by result.",
		},
		[]string{"result"},
	)

	authRevocations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "viuelpadel",
			Subsystem: "auth",
			Name:      "revocations_total",
			Help:      "Number of times the backend rejected the stored credential.",
		},
	)
)

func init() {
	Registry.MustRegister(
		backendRequests,
		backendDuration,
		cacheLookups,
		authRevocations,
	)
}

// Handler returns an HTTP handler that serves the registry in the Prometheus
// text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordBackendRequest records one completed backend round trip. status is 0
// when no response was received.
func RecordBackendRequest(method, endpoint string, status int, duration time.Duration) {
	statusLabel := "network_error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	backendRequests.WithLabelValues(method, endpoint, statusLabel).Inc()
	backendDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

// RecordAuthRevocation records a credential rejected with HTTP 403.
func RecordAuthRevocation() {
	authRevocations.Inc()
}
