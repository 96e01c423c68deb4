package telemetry

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"reminders/internal/core/port"
)

type AppMetrics struct {
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	activeConnections  prometheus.Gauge
	reminderOperations *prometheus.CounterVec
	reminderDuration   *prometheus.HistogramVec
	storeOperations    *prometheus.CounterVec
	storeDuration      *prometheus.HistogramVec
	sweepRuns          prometheus.Counter
	sweepReminders     *prometheus.CounterVec
	sweepDuration      prometheus.Histogram
	rateLimitHits      *prometheus.CounterVec
}

var _ port.Metrics = (*AppMetrics)(nil)

func NewAppMetrics(registry prometheus.Registerer) *AppMetrics {
	metrics := &AppMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		activeConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Number of in-flight HTTP requests",
			},
		),
		reminderOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reminder_operations_total",
				Help: "Total number of reminder operations",
			},
			[]string{"operation", "result"},
		),
		reminderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reminder_operation_duration_seconds",
				Help:    "Duration of reminder operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		storeOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kv_operations_total",
				Help: "Total number of key-value store operations",
			},
			[]string{"operation", "result"},
		),
		storeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kv_operation_duration_seconds",
				Help:    "Duration of key-value store operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		sweepRuns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sweep_runs_total",
				Help: "Total number of sweeps",
			},
		),
		sweepReminders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sweep_reminders_total",
				Help: "Reminders seen by sweeps, by outcome",
			},
			[]string{"outcome"},
		),
		sweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sweep_duration_seconds",
				Help:    "Duration of sweeps in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		rateLimitHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_hits_total",
				Help: "Total number of rate limit hits",
			},
			[]string{"path"},
		),
	}

	registry.MustRegister(
		metrics.requestDuration,
		metrics.requestTotal,
		metrics.activeConnections,
		metrics.reminderOperations,
		metrics.reminderDuration,
		metrics.storeOperations,
		metrics.storeDuration,
		metrics.sweepRuns,
		metrics.sweepReminders,
		metrics.sweepDuration,
		metrics.rateLimitHits,
	)

	return metrics
}

func (m *AppMetrics) RecordRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

func (m *AppMetrics) IncrementActiveConnections(ctx context.Context) {
	m.activeConnections.Inc()
}

func (m *AppMetrics) DecrementActiveConnections(ctx context.Context) {
	m.activeConnections.Dec()
}

func (m *AppMetrics) RecordReminderOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	m.reminderOperations.WithLabelValues(operation, result(err)).Inc()
	m.reminderDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *AppMetrics) RecordStoreOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	m.storeOperations.WithLabelValues(operation, result(err)).Inc()
	m.storeDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *AppMetrics) RecordSweep(ctx context.Context, checked, due, sent, failed, skipped int, duration time.Duration) {
	m.sweepRuns.Inc()
	m.sweepReminders.WithLabelValues("checked").Add(float64(checked))
	m.sweepReminders.WithLabelValues("due").Add(float64(due))
	m.sweepReminders.WithLabelValues("sent").Add(float64(sent))
	m.sweepReminders.WithLabelValues("failed").Add(float64(failed))
	m.sweepReminders.WithLabelValues("skipped").Add(float64(skipped))
	m.sweepDuration.Observe(duration.Seconds())
}

func (m *AppMetrics) RecordRateLimitHit(ctx context.Context, path string) {
	m.rateLimitHits.WithLabelValues(path).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
