package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Publisher sends refresh events to RefreshQueue.
type Publisher struct {
	conn *amqp.Connection
	mu   sync.Mutex
	ch   *amqp.Channel
}

// NewPublisher dials RabbitMQ and declares the refresh queue.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := declareRefreshQueue(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

// PublishRefresh sends one event as a persistent message.
func (p *Publisher) PublishRefresh(ctx context.Context, event RefreshEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode refresh event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.Publish(
		"",           // default exchange
		RefreshQueue, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.RequestedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish refresh event: %w", err)
	}
	return nil
}

// RequestRefresh publishes a refresh for userID (uuid.Nil for everyone).
func (p *Publisher) RequestRefresh(ctx context.Context, userID uuid.UUID, reason string) error {
	return p.PublishRefresh(ctx, NewRefreshEvent(userID, reason))
}

// Close closes the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ch.Close()
	return p.conn.Close()
}

func declareRefreshQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		RefreshQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", RefreshQueue, err)
	}
	return nil
}
