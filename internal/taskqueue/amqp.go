package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// Messages with an eta in the future are parked in the wait queue with a
	// per-message TTL and dead-letter into the ready queue on expiry.
	waitQueueSuffix  = ".wait"
	readyQueueSuffix = ".ready"
)

// AMQPQueue implements Queue on top of RabbitMQ. Tasks are published to a
// topic exchange; deferred tasks go through a TTL wait queue that
// dead-letters into the ready queue consumed by the worker.
//
// Revoke is best-effort only: a message already published to the broker
// cannot be recalled, so consumers must re-check task validity at fire time.
type AMQPQueue struct {
	// mu guards closed and serializes publishes; amqp channels are not
	// safe for concurrent use.
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	closed   bool
}

// NewAMQPQueue dials the broker and declares the exchange and queues.
func NewAMQPQueue(url, exchange string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareTopology(ch, exchange); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPQueue{conn: conn, ch: ch, exchange: exchange}, nil
}

func declareTopology(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	ready, err := ch.QueueDeclare(exchange+readyQueueSuffix, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare ready queue: %w", err)
	}
	if err := ch.QueueBind(ready.Name, "#", exchange, false, nil); err != nil {
		return fmt.Errorf("bind ready queue: %w", err)
	}

	// Expired messages from the wait queue are routed back through the
	// exchange and end up in the ready queue.
	_, err = ch.QueueDeclare(exchange+waitQueueSuffix, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange": exchange,
	})
	if err != nil {
		return fmt.Errorf("declare wait queue: %w", err)
	}

	return nil
}

// Enqueue publishes the task. If eta is in the future the message is parked
// in the wait queue with a matching TTL, otherwise it is routed directly.
func (q *AMQPQueue) Enqueue(ctx context.Context, task string, payload any, eta time.Time) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return "", ErrQueueClosed
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal task payload: %w", err)
	}

	handle := uuid.New().String()
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    handle,
		Type:         task,
		Body:         body,
	}

	delay := time.Until(eta)
	if delay <= 0 {
		if err := q.ch.PublishWithContext(ctx, q.exchange, task, false, false, msg); err != nil {
			return "", fmt.Errorf("publish task %s: %w", task, err)
		}
		return handle, nil
	}

	msg.Expiration = strconv.FormatInt(delay.Milliseconds(), 10)
	if err := q.ch.PublishWithContext(ctx, "", q.exchange+waitQueueSuffix, false, false, msg); err != nil {
		return "", fmt.Errorf("publish deferred task %s: %w", task, err)
	}
	return handle, nil
}

// Revoke is a no-op for AMQP: published messages cannot be recalled.
// Consumers re-validate against current state before acting.
func (q *AMQPQueue) Revoke(ctx context.Context, handle string) error {
	return nil
}

// Close closes the channel and connection.
func (q *AMQPQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	if q.ch != nil {
		_ = q.ch.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}
