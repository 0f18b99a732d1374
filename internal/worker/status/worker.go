package status

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// service is the slice of the order service the scheduler drives.
type service interface {
	AdvanceStatuses(ctx context.Context, now time.Time) int
}

// Worker periodically advances order statuses. One tick scans the whole
// collection and moves each due order a single state forward; an order
// dormant for days still advances one state per tick. Transition timing is
// therefore only as fresh as the tick period.
type Worker struct {
	service      service
	pollInterval time.Duration
	stopCh       chan struct{}
}

// NewWorker creates a new status worker.
func NewWorker(service service) *Worker {
	pollIntervalSeconds := viper.GetInt("orders.status.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 60
	}

	return &Worker{
		service:      service,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the tick loop. An immediate tick runs first so orders that
// became due while the process was down advance without waiting a full
// period. Start returns when the context is cancelled or Stop is called;
// the two must stay symmetric with Start so remounts do not leak tickers.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Status worker started", "poll_interval", w.pollInterval)

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Status worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Status worker stopped")

			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

func (w *Worker) tick(ctx context.Context) {
	if changed := w.service.AdvanceStatuses(ctx, time.Now()); changed > 0 {
		slog.Info("Status tick advanced orders", "count", changed)
	}
}
