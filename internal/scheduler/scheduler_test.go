package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"story_aggregator/internal/domain"
)

type countingBackfiller struct {
	calls atomic.Int32
	err   error
}

func (c *countingBackfiller) Backfill(ctx context.Context) (*domain.BackfillStats, error) {
	c.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("missing deadline")
	}
	if c.err != nil {
		return nil, c.err
	}
	return &domain.BackfillStats{}, nil
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	backfiller := &countingBackfiller{}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s := NewScheduler(backfiller, 10*time.Millisecond, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	err := s.Start(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, backfiller.calls.Load(), int32(2))
}

func TestScheduler_KeepsRunningAfterFailure(t *testing.T) {
	backfiller := &countingBackfiller{err: errors.New("db down")}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s := NewScheduler(backfiller, 10*time.Millisecond, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Millisecond)
	defer cancel()

	_ = s.Start(ctx)

	assert.GreaterOrEqual(t, backfiller.calls.Load(), int32(2))
}
