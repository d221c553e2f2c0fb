package taskqueue

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrQueueClosed is returned when enqueueing on a closed queue.
var ErrQueueClosed = errors.New("task queue is closed")

// Queue is the contract for a deferred task queue. Enqueue publishes a task
// to be delivered at eta (immediately if eta is in the past) and returns an
// opaque handle. Revoke requests best-effort removal of a not-yet-fired
// task; revoking an already-fired or unknown handle is a successful no-op.
type Queue interface {
	Enqueue(ctx context.Context, task string, payload any, eta time.Time) (string, error)
	Revoke(ctx context.Context, handle string) error
	Close() error
}

// NoopQueue is a Queue that drops every task. Used when no broker is
// configured: bookings are still created, reminders are skipped.
type NoopQueue struct{}

func NewNoopQueue() *NoopQueue {
	return &NoopQueue{}
}

func (q *NoopQueue) Enqueue(ctx context.Context, task string, payload any, eta time.Time) (string, error) {
	log.Printf("taskqueue disabled, dropping task %s", task)
	return "", nil
}

func (q *NoopQueue) Revoke(ctx context.Context, handle string) error {
	return nil
}

func (q *NoopQueue) Close() error {
	return nil
}
