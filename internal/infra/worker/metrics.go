package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"technews/internal/pkg/config"
)

// Job run statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// WorkerMetrics holds the worker's configuration and cron job metrics.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// CronJobRunsTotal counts runs by status (success/failure).
	CronJobRunsTotal *prometheus.CounterVec

	CronJobDurationSeconds prometheus.Histogram

	// CronJobArticlesSavedTotal counts articles accepted across all runs.
	CronJobArticlesSavedTotal prometheus.Counter

	CronJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics registers the worker metrics with reg; nil uses the
// default registerer.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics(reg, "worker"),

		CronJobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of cron job runs by status (success/failure)",
		}, []string{"status"}),

		CronJobDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of cron job execution in seconds",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 300, 900},
		}),

		CronJobArticlesSavedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_articles_saved_total",
			Help: "Total number of new articles saved across all cron job runs",
		}),

		CronJobLastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful cron job run",
		}),
	}
}

// RecordJobRun counts a finished run.
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.CronJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes how long a run took.
func (m *WorkerMetrics) RecordJobDuration(d time.Duration) {
	m.CronJobDurationSeconds.Observe(d.Seconds())
}

// RecordArticlesSaved adds the articles a run accepted.
func (m *WorkerMetrics) RecordArticlesSaved(count int) {
	m.CronJobArticlesSavedTotal.Add(float64(count))
}

// RecordLastSuccess stamps the last successful run with the current time.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.CronJobLastSuccessTimestamp.SetToCurrentTime()
}
