package telemetry

import (
	"context"
	"time"

	"reminders/internal/core/port"
)

// NoOpMetrics discards everything - useful for tests or when metrics are disabled
type NoOpMetrics struct{}

func NewNoOpMetrics() port.Metrics {
	return &NoOpMetrics{}
}

func (m *NoOpMetrics) RecordRequest(ctx context.Context, method string, path string, status int, duration time.Duration) {
}

func (m *NoOpMetrics) RecordReminderOperation(ctx context.Context, operation string, duration time.Duration, err error) {
}

func (m *NoOpMetrics) RecordStoreOperation(ctx context.Context, operation string, duration time.Duration, err error) {
}

func (m *NoOpMetrics) RecordSweep(ctx context.Context, checked, due, sent, failed, skipped int, duration time.Duration) {
}

func (m *NoOpMetrics) RecordRateLimitHit(ctx context.Context, path string) {
}

// Operation measures how long a unit of work took and reports it on Done.
type Operation struct {
	start  time.Time
	report func(time.Duration, error)
}

func StartOperation(report func(time.Duration, error)) *Operation {
	return &Operation{start: time.Now(), report: report}
}

func (o *Operation) Done(err error) {
	o.report(time.Since(o.start), err)
}
