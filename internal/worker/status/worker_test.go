package status

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingService struct {
	ticks atomic.Int32
}

func (s *countingService) AdvanceStatuses(_ context.Context, _ time.Time) int {
	s.ticks.Add(1)
	return 0
}

func TestWorker_StopTerminatesStart(t *testing.T) {
	svc := &countingService{}
	w := NewWorker(svc)
	w.pollInterval = time.Hour // only the immediate tick should run

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	// The immediate tick runs before the loop.
	assert.Eventually(t, func() bool { return svc.ticks.Load() == 1 }, time.Second, 5*time.Millisecond)

	w.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorker_ContextCancelTerminatesStart(t *testing.T) {
	svc := &countingService{}
	w := NewWorker(svc)
	w.pollInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}

func TestWorker_TicksPeriodically(t *testing.T) {
	svc := &countingService{}
	w := NewWorker(svc)
	w.pollInterval = 10 * time.Millisecond

	go w.Start(context.Background())
	defer w.Stop()

	// Immediate tick plus at least two periodic ones.
	assert.Eventually(t, func() bool { return svc.ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestNewWorker_DefaultInterval(t *testing.T) {
	w := NewWorker(&countingService{})
	assert.Equal(t, 60*time.Second, w.pollInterval)
}
