package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"reminders/internal/core/service"
	"reminders/pkg/logger"
)

type Sweeper interface {
	Run(ctx context.Context) (service.SweepResult, error)
}

// Scheduler runs the sweep inside the API process for deployments with no
// external cron.
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *logger.Logger
}

func New(sweeper Sweeper, interval time.Duration, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewNop()
	}

	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		logger:   log,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
// A failed sweep is logged and the next tick tries again.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info(ctx, "sweep scheduler started", zap.Duration("interval", s.interval))

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(context.Background(), "sweep scheduler stopped")
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if _, err := s.sweeper.Run(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error(ctx, "scheduled sweep failed", zap.Error(err))
	}
}
