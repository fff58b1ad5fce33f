package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Handler processes one refresh event.
type Handler func(ctx context.Context, event RefreshEvent) error

// Consumer runs a pool of workers reading RefreshQueue.
type Consumer struct {
	url string
	log logrus.FieldLogger
}

// NewConsumer creates a consumer for the broker at url.
func NewConsumer(url string, log logrus.FieldLogger) *Consumer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Consumer{url: url, log: log}
}

// Run starts workers goroutines, each with its own channel and a prefetch
// of one, and blocks until ctx is cancelled or the connection drops.
func (c *Consumer) Run(ctx context.Context, workers int, handler Handler) error {
	if workers <= 0 {
		workers = 1
	}

	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	var wg sync.WaitGroup
	for i := range workers {
		deliveries, ch, err := c.subscribe(conn, i)
		if err != nil {
			_ = conn.Close()
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer func() { _ = ch.Close() }()
			c.log.WithField("worker", id+1).Info("refresh worker started")
			c.work(ctx, deliveries, handler, c.log.WithField("worker", id+1))
		}(i)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case amqpErr := <-closed:
		if amqpErr != nil {
			runErr = fmt.Errorf("rabbitmq connection closed: %w", amqpErr)
		}
	}

	_ = conn.Close()
	wg.Wait()
	return runErr
}

func (c *Consumer) subscribe(conn *amqp.Connection, worker int) (<-chan amqp.Delivery, *amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := declareRefreshQueue(ch); err != nil {
		_ = ch.Close()
		return nil, nil, err
	}
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		return nil, nil, fmt.Errorf("failed to set prefetch: %w", err)
	}
	deliveries, err := ch.Consume(
		RefreshQueue,
		fmt.Sprintf("refresh-worker-%d", worker+1),
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, nil, fmt.Errorf("failed to consume %s: %w", RefreshQueue, err)
	}
	return deliveries, ch, nil
}

func (c *Consumer) work(ctx context.Context, deliveries <-chan amqp.Delivery, handler Handler, log logrus.FieldLogger) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			handleDelivery(ctx, d, handler, log)
		}
	}
}

// handleDelivery acks processed messages. Undecodable messages are dropped;
// a failed handler is requeued once and dropped on redelivery.
func handleDelivery(ctx context.Context, d amqp.Delivery, handler Handler, log logrus.FieldLogger) {
	event, err := DecodeRefreshEvent(d.Body)
	if err != nil {
		log.WithError(err).Warn("dropping malformed refresh event")
		_ = d.Nack(false, false)
		return
	}

	entry := log.WithFields(logrus.Fields{"user_id": event.UserID, "reason": event.Reason})
	if err := handler(ctx, event); err != nil {
		entry.WithError(err).WithField("redelivered", d.Redelivered).Error("refresh failed")
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	entry.Debug("refresh done")
	_ = d.Ack(false)
}
