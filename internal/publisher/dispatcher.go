package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"story_aggregator/internal/domain"
)

type Broker interface {
	PublishStoryCreated(ctx context.Context, event domain.StoryCreatedEvent) error
}

// Dispatcher decouples event emission from broker delivery. Emit never blocks
// the caller; when the buffer is full the event is dropped and logged.
type Dispatcher struct {
	broker         Broker
	events         chan domain.StoryCreatedEvent
	publishTimeout time.Duration
	logger         *slog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(broker Broker, bufferSize int, logger *slog.Logger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Dispatcher{
		broker:         broker,
		events:         make(chan domain.StoryCreatedEvent, bufferSize),
		publishTimeout: 5 * time.Second,
		logger:         logger.With("component", "dispatcher"),
		done:           make(chan struct{}),
	}
}

func (d *Dispatcher) Emit(event domain.StoryCreatedEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("dispatcher closed, dropping event",
			"story_id", event.StoryID,
			"mutation_id", event.MutationID,
		)
		return
	}

	select {
	case d.events <- event:
	default:
		d.logger.Warn("event buffer full, dropping event",
			"story_id", event.StoryID,
			"mutation_id", event.MutationID,
		)
	}
}

// Run publishes buffered events until Close is called and the buffer is
// drained. Publish failures are logged and never retried.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.done)

	for event := range d.events {
		d.publish(ctx, event)
	}
}

func (d *Dispatcher) publish(ctx context.Context, event domain.StoryCreatedEvent) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.publishTimeout)
	defer cancel()

	if err := d.broker.PublishStoryCreated(pubCtx, event); err != nil {
		d.logger.Error("failed to publish story created",
			"tenant_id", event.TenantID,
			"story_id", event.StoryID,
			"mutation_id", event.MutationID,
			"error", err,
		)
	}
}

// Close stops accepting events and waits for Run to drain the buffer or for
// ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
