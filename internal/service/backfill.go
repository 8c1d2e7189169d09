package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"story_aggregator/internal/config"
	"story_aggregator/internal/domain"
)

// BackfillService re-queues scrapes for recent stories that still have no
// metadata, covering enqueues lost by the fire-and-forget path.
type BackfillService struct {
	stories StoryStore
	scrapes ScrapeQueue
	metrics Recorder
	logger  *slog.Logger
	config  config.BackfillConfig
	now     func() time.Time
}

func NewBackfillService(
	stories StoryStore,
	scrapes ScrapeQueue,
	metrics Recorder,
	logger *slog.Logger,
	cfg config.BackfillConfig,
) *BackfillService {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &BackfillService{
		stories: stories,
		scrapes: scrapes,
		metrics: metrics,
		logger:  logger.With("component", "scrape_backfill"),
		config:  cfg,
		now:     time.Now,
	}
}

func (b *BackfillService) Backfill(ctx context.Context) (*domain.BackfillStats, error) {
	startTime := b.now()
	cutoff := startTime.Add(-b.config.MaxAge)

	stories, err := b.stories.FindUnscraped(ctx, cutoff, b.config.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("find unscraped stories: %w", err)
	}

	stats := &domain.BackfillStats{Candidates: len(stories)}

	for _, story := range stories {
		task := domain.ScrapeTask{
			MutationID: domain.NewMutationID(),
			TenantID:   story.TenantID,
			StoryID:    story.ID,
			StoryURL:   story.URL,
		}
		if err := b.scrapes.EnqueueScrape(ctx, task); err != nil {
			stats.Errors++
			b.metrics.ScrapeEnqueued("failed")
			b.logger.Warn("failed to enqueue scrape",
				"tenant_id", story.TenantID,
				"story_id", story.ID,
				"error", err,
			)
			continue
		}
		stats.Enqueued++
		b.metrics.ScrapeEnqueued("backfill")
	}

	stats.Duration = b.now().Sub(startTime)

	b.logger.Info("backfill completed",
		"candidates", stats.Candidates,
		"enqueued", stats.Enqueued,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)

	return stats, nil
}
