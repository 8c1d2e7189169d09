package scheduler

import (
	"context"
	"log/slog"
	"time"

	"story_aggregator/internal/domain"
)

// Backfiller re-queues work that the fire-and-forget paths may have lost.
type Backfiller interface {
	Backfill(ctx context.Context) (*domain.BackfillStats, error)
}

type Scheduler struct {
	backfiller Backfiller
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(backfiller Backfiller, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		backfiller: backfiller,
		interval:   interval,
		runTimeout: 5 * time.Minute,
		logger:     logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runBackfill(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runBackfill(ctx)
		}
	}
}

func (s *Scheduler) runBackfill(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	if _, err := s.backfiller.Backfill(runCtx); err != nil {
		s.logger.Error("backfill failed", "error", err)
	}
}
