package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"reminders/internal/core/service"
)

type countingSweeper struct {
	runs atomic.Int32
	err  error
}

func (c *countingSweeper) Run(context.Context) (service.SweepResult, error) {
	c.runs.Add(1)
	return service.SweepResult{}, c.err
}

func TestScheduler_RunsImmediatelyAndOnEachTick(t *testing.T) {
	RegisterTestingT(t)

	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- New(sweeper, 10*time.Millisecond, nil).Run(ctx) }()

	Eventually(sweeper.runs.Load, time.Second, 5*time.Millisecond).Should(BeNumerically(">=", 3))

	cancel()
	Eventually(done, time.Second).Should(Receive(BeNil()))
}

func TestScheduler_KeepsGoingAfterFailure(t *testing.T) {
	RegisterTestingT(t)

	sweeper := &countingSweeper{err: errors.New("store down")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go New(sweeper, 10*time.Millisecond, nil).Run(ctx)

	Eventually(sweeper.runs.Load, time.Second, 5*time.Millisecond).Should(BeNumerically(">=", 2))
}

func TestScheduler_FirstSweepIsImmediate(t *testing.T) {
	RegisterTestingT(t)

	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go New(sweeper, time.Hour, nil).Run(ctx)

	Eventually(sweeper.runs.Load, time.Second, 5*time.Millisecond).Should(Equal(int32(1)))
	Consistently(sweeper.runs.Load, 50*time.Millisecond, 10*time.Millisecond).Should(Equal(int32(1)))
}
