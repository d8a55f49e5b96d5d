package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks digest job executions for Prometheus.
type Metrics struct {
	// JobRunsTotal counts digest runs by outcome: started, success, failure.
	JobRunsTotal *prometheus.CounterVec

	// JobDurationSeconds observes how long a full digest run takes.
	JobDurationSeconds prometheus.Histogram

	// DigestsSentTotal counts digests actually delivered.
	DigestsSentTotal prometheus.Counter

	// MailErrorsTotal counts per-newsletter delivery failures.
	MailErrorsTotal prometheus.Counter

	// LastSuccessTimestamp records the unix time of the last successful run.
	LastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates and registers the worker metrics on the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{
		JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_digest_job_runs_total",
			Help: "Total number of digest job runs by status",
		}, []string{"status"}),
		JobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_digest_job_duration_seconds",
			Help:    "Duration of digest job runs",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		DigestsSentTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_digest_sent_total",
			Help: "Total number of newsletter digests delivered",
		}),
		MailErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_digest_mail_errors_total",
			Help: "Total number of digest delivery failures",
		}),
		LastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_digest_last_success_timestamp",
			Help: "Unix timestamp of the last successful digest run",
		}),
	}
}

// RecordJobRun records one run outcome: "started", "success", or "failure".
func (m *Metrics) RecordJobRun(status string) {
	if m == nil {
		return
	}
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration records the duration of a completed run.
func (m *Metrics) RecordJobDuration(seconds float64) {
	if m == nil {
		return
	}
	m.JobDurationSeconds.Observe(seconds)
}

// RecordDelivery records delivered digests and failed deliveries of one run.
func (m *Metrics) RecordDelivery(sent, mailErrors int64) {
	if m == nil {
		return
	}
	m.DigestsSentTotal.Add(float64(sent))
	m.MailErrorsTotal.Add(float64(mailErrors))
}

// RecordLastSuccess stamps the last successful run at now.
func (m *Metrics) RecordLastSuccess() {
	if m == nil {
		return
	}
	m.LastSuccessTimestamp.Set(float64(time.Now().Unix()))
}
