package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total number of authentication requests",
		},
		[]string{"operation", "status"}, // operation: login|register, status: success|failure
	)

	authRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_request_duration_seconds",
			Help:    "Authentication request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// RecordAuthRequest records the outcome of an authentication request.
func RecordAuthRequest(operation, status string) {
	authRequestsTotal.WithLabelValues(operation, status).Inc()
}

// RecordAuthDuration records how long an authentication request took.
func RecordAuthDuration(operation string, seconds float64) {
	authRequestDuration.WithLabelValues(operation).Observe(seconds)
}
