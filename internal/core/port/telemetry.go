package port

import (
	"context"
	"time"
)

// Metrics lets the core report what it did without knowing the backend.
type Metrics interface {
	RecordRequest(ctx context.Context, method string, path string, status int, duration time.Duration)
	RecordReminderOperation(ctx context.Context, operation string, duration time.Duration, err error)
	RecordStoreOperation(ctx context.Context, operation string, duration time.Duration, err error)
	RecordSweep(ctx context.Context, checked, due, sent, failed, skipped int, duration time.Duration)
	RecordRateLimitHit(ctx context.Context, path string)
}
