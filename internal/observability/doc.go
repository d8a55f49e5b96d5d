// Package observability provides production-grade observability infrastructure
// including structured logging and Prometheus metrics.
//
// This package centralizes observability concerns to enable:
//   - Structured logging with context propagation
//   - Prometheus metrics for monitoring
//   - SLO tracking against availability and latency targets
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - slo: Service level objective targets and tracking gauges
//
// Example usage:
//
//	import (
//	    "newsdesk/internal/observability/logging"
//	    "newsdesk/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordArticleApproved()
//	}
package observability
