// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (articles, approvals, subscriptions, registrations)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newsdesk/internal/observability/metrics"
//
//	func approve(id int64) {
//	    // ... flip the approval flag ...
//	    metrics.RecordArticleApproved()
//	}
package metrics
