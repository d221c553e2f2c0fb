package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/taskqueue"
)

// ErrReminderSkipped signals that the computed fire time was already in the
// past, so no task was enqueued. Non-fatal: callers log and move on.
var ErrReminderSkipped = errors.New("reminder fire time already passed")

const (
	enqueueAttempts = 3
	enqueueBackoff  = 100 * time.Millisecond
)

// Scheduler computes reminder fire times and dispatches deferred and
// immediate notification tasks to the queue. Enqueueing is best-effort with
// a short bounded retry; a broker outage never fails the calling operation
// beyond the returned error.
type Scheduler struct {
	queue taskqueue.Queue
	lead  time.Duration
	loc   *time.Location
	now   func() time.Time
}

// NewScheduler creates a Scheduler. lead is subtracted from the slot start
// to obtain the reminder fire time; loc anchors date+time combination.
func NewScheduler(queue taskqueue.Queue, lead time.Duration, loc *time.Location) *Scheduler {
	return NewSchedulerWithClock(queue, lead, loc, time.Now)
}

// NewSchedulerWithClock allows injecting a clock for deterministic tests.
func NewSchedulerWithClock(queue taskqueue.Queue, lead time.Duration, loc *time.Location, now func() time.Time) *Scheduler {
	return &Scheduler{
		queue: queue,
		lead:  lead,
		loc:   loc,
		now:   now,
	}
}

// ComputeFireAt combines the booking date with the slot start time of day
// and subtracts the reminder lead.
func (s *Scheduler) ComputeFireAt(date time.Time, startTime string) (time.Time, error) {
	clock, err := time.Parse("15:04", startTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot start time %q: %w", startTime, err)
	}

	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		s.loc,
	)
	return start.Add(-s.lead), nil
}

// ScheduleReminder enqueues a deferred reminder task and returns the task
// handle and the computed fire time. Returns ErrReminderSkipped without
// enqueueing when the fire time is already in the past.
func (s *Scheduler) ScheduleReminder(ctx context.Context, p ReminderPayload) (string, time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", p.Date, s.loc)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid booking date %q: %w", p.Date, err)
	}

	fireAt, err := s.ComputeFireAt(date, p.StartTime)
	if err != nil {
		return "", time.Time{}, err
	}

	if !fireAt.After(s.now()) {
		return "", time.Time{}, ErrReminderSkipped
	}

	handle, err := s.enqueue(ctx, TaskBookingReminder, p, fireAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return handle, fireAt, nil
}

// CancelReminder requests best-effort removal of a pending reminder.
// Cancelling an absent or already-fired reminder is a successful no-op.
func (s *Scheduler) CancelReminder(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	return s.queue.Revoke(ctx, handle)
}

// NotifyManager enqueues an immediate manager notification task.
func (s *Scheduler) NotifyManager(ctx context.Context, p ManagerNotifyPayload) error {
	_, err := s.enqueue(ctx, TaskManagerNotify, p, s.now())
	return err
}

// CascadeCancel enqueues a task cancelling all active bookings that
// reference the deactivated entity.
func (s *Scheduler) CascadeCancel(ctx context.Context, entity string, entityID int64) error {
	_, err := s.enqueue(ctx, TaskCascadeCancel, CascadeCancelPayload{
		Entity:   entity,
		EntityID: entityID,
	}, s.now())
	return err
}

func (s *Scheduler) enqueue(ctx context.Context, task string, payload any, eta time.Time) (string, error) {
	var lastErr error
	backoff := enqueueBackoff

	for attempt := 1; attempt <= enqueueAttempts; attempt++ {
		handle, err := s.queue.Enqueue(ctx, task, payload, eta)
		if err == nil {
			return handle, nil
		}
		lastErr = err

		if attempt < enqueueAttempts {
			log.Printf("enqueue %s failed (attempt %d): %v", task, attempt, err)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return "", fmt.Errorf("enqueue %s failed after %d attempts: %w", task, enqueueAttempts, lastErr)
}
