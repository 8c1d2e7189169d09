package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"story_aggregator/internal/domain"
)

type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	events   Binding
	scrape   Binding
	logger   *slog.Logger
}

type Config struct {
	URL      string
	Exchange string
	Events   Binding
	Scrape   Binding
}

// Binding ties a durable queue to a routing key on the exchange.
type Binding struct {
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	for _, b := range []Binding{cfg.Events, cfg.Scrape} {
		if err := declareBinding(ch, cfg.Exchange, b); err != nil {
			ch.Close()
			conn.Close()
			return nil, err
		}
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"events_queue", cfg.Events.QueueName,
		"scrape_queue", cfg.Scrape.QueueName,
	)

	return &RabbitMQ{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		events:   cfg.Events,
		scrape:   cfg.Scrape,
		logger:   logger,
	}, nil
}

func declareBinding(ch *amqp.Channel, exchange string, b Binding) error {
	q, err := ch.QueueDeclare(
		b.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", b.QueueName, err)
	}

	err = ch.QueueBind(
		q.Name,
		b.RoutingKey,
		exchange,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue %s: %w", b.QueueName, err)
	}
	return nil
}

type StoryCreatedMessage struct {
	Event     domain.StoryCreatedEvent `json:"event"`
	Timestamp time.Time                `json:"timestamp"`
}

type ScrapeMessage struct {
	Task      domain.ScrapeTask `json:"task"`
	Timestamp time.Time         `json:"timestamp"`
}

func (r *RabbitMQ) PublishStoryCreated(ctx context.Context, event domain.StoryCreatedEvent) error {
	msg := StoryCreatedMessage{
		Event:     event,
		Timestamp: time.Now().UTC(),
	}

	if err := r.publish(ctx, r.events.RoutingKey, event.MutationID, msg); err != nil {
		return err
	}

	r.logger.Debug("published story created",
		"tenant_id", event.TenantID,
		"story_id", event.StoryID,
		"mutation_id", event.MutationID,
	)
	return nil
}

func (r *RabbitMQ) EnqueueScrape(ctx context.Context, task domain.ScrapeTask) error {
	msg := ScrapeMessage{
		Task:      task,
		Timestamp: time.Now().UTC(),
	}

	if err := r.publish(ctx, r.scrape.RoutingKey, task.MutationID, msg); err != nil {
		return err
	}

	r.logger.Debug("enqueued scrape",
		"tenant_id", task.TenantID,
		"story_id", task.StoryID,
		"mutation_id", task.MutationID,
	)
	return nil
}

func (r *RabbitMQ) publish(ctx context.Context, routingKey, messageID string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    messageID,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Handler processes one delivery body. A returned error nacks the delivery
// with requeue when retry is true.
type Handler func(ctx context.Context, body []byte) (retry bool, err error)

// Consume delivers messages from queue to handler until ctx is done. It uses
// its own channel so publishing is not blocked by prefetch.
func (r *RabbitMQ) Consume(ctx context.Context, queue string, prefetch int, handler Handler) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("open consumer channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	r.logger.Info("consuming", "queue", queue, "prefetch", prefetch)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("consume %s: delivery channel closed", queue)
			}
			r.handle(ctx, d, handler)
		}
	}
}

func (r *RabbitMQ) handle(ctx context.Context, d amqp.Delivery, handler Handler) {
	retry, err := handler(ctx, d.Body)
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			r.logger.Error("failed to ack", "message_id", d.MessageId, "error", ackErr)
		}
		return
	}

	r.logger.Warn("handler failed",
		"message_id", d.MessageId,
		"redelivered", d.Redelivered,
		"retry", retry,
		"error", err,
	)
	// Redelivered messages are dropped to avoid a poison loop.
	if nackErr := d.Nack(false, retry && !d.Redelivered); nackErr != nil {
		r.logger.Error("failed to nack", "message_id", d.MessageId, "error", nackErr)
	}
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
