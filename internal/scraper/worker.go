package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"story_aggregator/internal/domain"
	"story_aggregator/internal/publisher"
)

// Worker consumes scrape tasks from the queue.
type Worker struct {
	scraper *Scraper
	logger  *slog.Logger
}

func NewWorker(scraper *Scraper, logger *slog.Logger) *Worker {
	return &Worker{
		scraper: scraper,
		logger:  logger.With("component", "scrape_worker"),
	}
}

// Handle implements publisher.Handler. Malformed messages, removed stories
// and permanent HTTP failures are acknowledged without retry. A permanent
// failure still stamps the story so the backfill stops re-queuing it.
func (w *Worker) Handle(ctx context.Context, body []byte) (bool, error) {
	var msg publisher.ScrapeMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return false, fmt.Errorf("decode scrape message: %w", err)
	}
	task := msg.Task

	story, err := w.scraper.Scrape(ctx, task.TenantID, task.StoryID, task.StoryURL)
	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		w.logger.Warn("dropping scrape for unknown tenant", "tenant_id", task.TenantID, "story_id", task.StoryID)
		return false, nil
	case err != nil:
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.retryable() {
			w.logger.Warn("page not scrapable",
				"story_id", task.StoryID,
				"url", task.StoryURL,
				"status", statusErr.StatusCode,
			)
			if err := w.scraper.MarkAttempted(ctx, task.TenantID, task.StoryID); err != nil {
				return true, err
			}
			return false, nil
		}
		return true, err
	case story == nil:
		w.logger.Info("story removed before scrape", "tenant_id", task.TenantID, "story_id", task.StoryID)
		return false, nil
	}

	w.logger.Info("story scraped",
		"tenant_id", task.TenantID,
		"story_id", task.StoryID,
		"mutation_id", task.MutationID,
	)
	return false, nil
}
