package metrics

import "time"

// RecordArticleCreated records a drafted article.
func RecordArticleCreated() {
	ArticlesCreatedTotal.Inc()
}

// RecordArticleApproved records an approval transition. Only transitions that
// actually flipped the flag are counted; idempotent re-approvals are not.
func RecordArticleApproved() {
	ArticlesApprovedTotal.Inc()
}

// RecordSubscription records a subscribe operation.
// Kind should be either "journalist" or "newsletter".
func RecordSubscription(kind string) {
	SubscriptionsTotal.WithLabelValues(kind).Inc()
}

// RecordUserRegistered records a completed registration for the given role.
func RecordUserRegistered(role string) {
	UsersRegisteredTotal.WithLabelValues(role).Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_articles", "insert_article").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
