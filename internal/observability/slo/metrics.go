// Package slo defines the service level objectives for the API and the
// gauges that track them. The HTTP metrics middleware feeds the tracker on
// every request, so the gauges reflect the live availability and error rate.
package slo

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets define the service level objectives for the application.
// These targets are used to measure and monitor service reliability.
const (
	// AvailabilitySLO defines the target uptime percentage (99.9% = 43 minutes downtime per month)
	AvailabilitySLO = 99.9

	// ErrorRateSLO defines the maximum acceptable error rate as a ratio (0.1% = 0.001)
	ErrorRateSLO = 0.001
)

// SLO tracking metrics. The gauges are recomputed on every recorded request
// from process-lifetime counters.
var (
	// SLOAvailability tracks the current availability ratio (0-1)
	// calculated as: (total_requests - 5xx_errors) / total_requests
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Current availability ratio (0-1), target: 0.999",
		},
	)

	// SLOErrorRate tracks the current error rate ratio (0-1)
	// calculated as: 5xx_errors / total_requests
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Current error rate ratio (0-1), target: 0.001",
		},
	)
)

var (
	totalRequests atomic.Int64
	errorRequests atomic.Int64
)

// RecordRequest feeds one finished request into the SLO tracker.
// serverError marks responses with a 5xx status.
func RecordRequest(serverError bool) {
	total := totalRequests.Add(1)
	errs := errorRequests.Load()
	if serverError {
		errs = errorRequests.Add(1)
	}

	rate := float64(errs) / float64(total)
	SLOErrorRate.Set(rate)
	SLOAvailability.Set(1 - rate)
}
