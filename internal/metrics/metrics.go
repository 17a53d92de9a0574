package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freightquote_quotes_total",
			Help: "Total number of per-carrier quote computations by outcome",
		},
		[]string{"carrier", "outcome"},
	)

	QuoteDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "freightquote_quote_duration_seconds",
			Help:    "Quote request duration in seconds per path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freightquote_request_errors_total",
			Help: "Total number of HTTP error responses per path and code",
		},
		[]string{"path", "code"},
	)

	ReferenceRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "freightquote_reference_rows",
			Help: "Row count of the loaded reference tables",
		},
		[]string{"table"},
	)

	ReloadTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freightquote_reference_reloads_total",
			Help: "Total number of reference data reload attempts",
		},
	)

	ReloadFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freightquote_reference_reload_failures_total",
			Help: "Total number of failed reference data reloads",
		},
	)

	ReloadLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "freightquote_reference_reload_last_success_timestamp",
			Help: "Unix timestamp of the last successful reference data load",
		},
	)
)

var (
	ScheduledJobLastRun = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "freightquote_job_last_run_timestamp",
			Help: "Unix timestamp of the last completed run for a job",
		},
		[]string{"job"},
	)

	ScheduledJobLastDurationSeconds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "freightquote_job_last_duration_seconds",
			Help: "Duration of the last completed run for a job",
		},
		[]string{"job"},
	)

	ScheduledJobFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freightquote_job_failures_total",
			Help: "Total number of failed executions per job",
		},
		[]string{"job"},
	)
)

func UpdateJobMetrics(job string, startedAt time.Time, err error) {
	dur := time.Since(startedAt).Seconds()
	ScheduledJobLastDurationSeconds.WithLabelValues(job).Set(dur)
	ScheduledJobLastRun.WithLabelValues(job).Set(float64(time.Now().Unix()))
	if err != nil {
		ScheduledJobFailuresTotal.WithLabelValues(job).Inc()
	}
}
