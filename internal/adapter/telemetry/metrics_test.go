package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAppMetrics(t *testing.T) {
	RegisterTestingT(t)

	registry := prometheus.NewRegistry()
	m := NewAppMetrics(registry)
	ctx := context.Background()

	m.RecordRequest(ctx, "POST", "/api/reminders", 201, 20*time.Millisecond)
	m.RecordRequest(ctx, "POST", "/api/reminders", 201, 10*time.Millisecond)
	m.RecordReminderOperation(ctx, "create", time.Millisecond, nil)
	m.RecordReminderOperation(ctx, "create", time.Millisecond, errors.New("boom"))
	m.RecordStoreOperation(ctx, "put", time.Millisecond, nil)
	m.RecordSweep(ctx, 5, 2, 1, 1, 1, time.Second)
	m.RecordRateLimitHit(ctx, "/api/reminders")

	Expect(testutil.ToFloat64(m.requestTotal.WithLabelValues("POST", "/api/reminders", "201"))).To(Equal(2.0))
	Expect(testutil.ToFloat64(m.reminderOperations.WithLabelValues("create", "success"))).To(Equal(1.0))
	Expect(testutil.ToFloat64(m.reminderOperations.WithLabelValues("create", "error"))).To(Equal(1.0))
	Expect(testutil.ToFloat64(m.storeOperations.WithLabelValues("put", "success"))).To(Equal(1.0))
	Expect(testutil.ToFloat64(m.sweepRuns)).To(Equal(1.0))
	Expect(testutil.ToFloat64(m.sweepReminders.WithLabelValues("checked"))).To(Equal(5.0))
	Expect(testutil.ToFloat64(m.sweepReminders.WithLabelValues("sent"))).To(Equal(1.0))
	Expect(testutil.ToFloat64(m.sweepReminders.WithLabelValues("skipped"))).To(Equal(1.0))
	Expect(testutil.ToFloat64(m.rateLimitHits.WithLabelValues("/api/reminders"))).To(Equal(1.0))

	count, err := testutil.GatherAndCount(registry, "http_request_duration_seconds")
	Expect(err).To(BeNil())
	Expect(count).To(Equal(1))
}
