package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"reminders/internal/core/domain"
	"reminders/internal/core/port"
	"reminders/internal/core/telemetry"
	"reminders/pkg/logger"
	"reminders/pkg/tracing"
)

// SweepResult counts what one sweep did. Checked is every listed reminder,
// Due the subset that was due and unsent. Skipped counts due reminders that
// were notified but could not be persisted, or left unsent by policy.
type SweepResult struct {
	Checked int `json:"checked"`
	Due     int `json:"due"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type Sweeper struct {
	repo             port.ReminderRepository
	notifier         port.Notifier
	metrics          port.Metrics
	logger           *logger.Logger
	now              Clock
	markFailedAsSent bool
}

type SweeperOption func(*Sweeper)

func WithSweepClock(clock Clock) SweeperOption {
	return func(s *Sweeper) {
		s.now = clock
	}
}

func WithSweepMetrics(metrics port.Metrics) SweeperOption {
	return func(s *Sweeper) {
		s.metrics = metrics
	}
}

func WithSweepLogger(log *logger.Logger) SweeperOption {
	return func(s *Sweeper) {
		s.logger = log
	}
}

// WithMarkFailedAsSent chooses what happens to a reminder whose
// notification failed. true marks it sent anyway, so it is never retried.
// false leaves it unsent for the next sweep.
func WithMarkFailedAsSent(mark bool) SweeperOption {
	return func(s *Sweeper) {
		s.markFailedAsSent = mark
	}
}

func NewSweeper(repo port.ReminderRepository, notifier port.Notifier, opts ...SweeperOption) *Sweeper {
	s := &Sweeper{
		repo:             repo,
		notifier:         notifier,
		metrics:          telemetry.NewNoOpMetrics(),
		logger:           logger.NewNop(),
		now:              time.Now,
		markFailedAsSent: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run notifies every due, unsent reminder one at a time and flips its sent
// flag. A failure on one reminder never stops the others; only a failing
// listing aborts the sweep.
func (s *Sweeper) Run(ctx context.Context) (SweepResult, error) {
	var result SweepResult
	start := time.Now()

	err := tracing.ServiceSpanWrapper(ctx, "sweep", "run", func(ctx context.Context) error {
		reminders, err := s.repo.List(ctx)
		if err != nil {
			s.logger.Error(ctx, "sweep aborted: could not list reminders", zap.Error(err))
			return err
		}

		now := s.now()
		result.Checked = len(reminders)

		for _, reminder := range reminders {
			if err := ctx.Err(); err != nil {
				s.logger.Warn(ctx, "sweep interrupted", zap.Error(err))
				break
			}

			if !reminder.IsDue(now) {
				continue
			}

			result.Due++
			s.process(ctx, reminder, &result)
		}

		return nil
	})

	s.metrics.RecordSweep(ctx, result.Checked, result.Due, result.Sent, result.Failed, result.Skipped, time.Since(start))

	if err == nil {
		s.logger.Info(ctx, "sweep finished",
			zap.Int("checked", result.Checked),
			zap.Int("due", result.Due),
			zap.Int("sent", result.Sent),
			zap.Int("failed", result.Failed),
			zap.Int("skipped", result.Skipped),
		)
	}

	return result, err
}

func (s *Sweeper) process(ctx context.Context, reminder domain.Reminder, result *SweepResult) {
	fields := []zap.Field{
		zap.String("id", reminder.ID),
		zap.String("email", reminder.Email),
	}

	notifyErr := s.notify(ctx, reminder)
	if notifyErr != nil {
		result.Failed++
		s.logger.Error(ctx, "failed to send reminder", append(fields, zap.Error(notifyErr))...)

		if !s.markFailedAsSent {
			result.Skipped++
			return
		}
	}

	reminder.MarkSent()

	if err := s.repo.Update(ctx, reminder); err != nil {
		result.Skipped++
		s.logger.Error(ctx, "failed to mark reminder as sent", append(fields, zap.Error(err))...)
		return
	}

	if notifyErr == nil {
		result.Sent++
		s.logger.Info(ctx, "reminder sent", fields...)
	}
}

// notify turns a notifier panic into an error scoped to this reminder.
func (s *Sweeper) notify(ctx context.Context, reminder domain.Reminder) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()

	return s.notifier.SendReminder(ctx, reminder)
}
