package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/booking"
	"github.com/openbistro/cafe-booking-backend/internal/notify"
	"github.com/openbistro/cafe-booking-backend/internal/taskqueue"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Worker consumes queued tasks and executes them: customer reminders,
// staff notifications and cascade cancellations. Delivery is at least
// once, so every handler re-checks current state before acting.
type Worker struct {
	consumer *taskqueue.Consumer
	bookings booking.Repository
	notifier notify.Notifier
	now      func() time.Time
}

func New(consumer *taskqueue.Consumer, bookings booking.Repository, notifier notify.Notifier) *Worker {
	return &Worker{
		consumer: consumer,
		bookings: bookings,
		notifier: notifier,
		now:      time.Now,
	}
}

// Run consumes deliveries until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	deliveries, err := w.consumer.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	log.Println("worker consuming tasks")
	for d := range deliveries {
		w.handle(ctx, d)
	}
	return ctx.Err()
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var err error
	switch d.Type {
	case notify.TaskBookingReminder:
		err = w.handleReminder(ctx, d.Body)
	case notify.TaskManagerNotify:
		err = w.handleManagerNotify(d.Body)
	case notify.TaskCascadeCancel:
		err = w.handleCascadeCancel(ctx, d.Body)
	default:
		log.Printf("dropping unknown task %q", d.Type)
		_ = d.Ack(false)
		return
	}

	if err != nil {
		log.Printf("task %s failed (redelivered=%t): %v", d.Type, d.Redelivered, err)
		// Requeue once so a transient failure (DB blip, notifier down)
		// gets a second delivery; a redelivered task that fails again
		// is dropped to avoid a poison-message loop.
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

// handleReminder re-validates the booking before notifying: a cancelled or
// finished booking, or one whose reminder was revoked, sends nothing.
func (w *Worker) handleReminder(ctx context.Context, body []byte) error {
	var p notify.ReminderPayload
	if err := json.Unmarshal(body, &p); err != nil {
		log.Printf("dropping malformed reminder payload: %v", err)
		return nil
	}

	b, err := w.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		// Booking gone; nothing to remind about.
		log.Printf("reminder for booking %d skipped: %v", p.BookingID, err)
		return nil
	}
	if !b.Status.Active() || b.RemindAt == nil {
		log.Printf("reminder for booking %d skipped: status=%s", b.ID, b.Status)
		return nil
	}

	subject := fmt.Sprintf("Upcoming booking at %s", p.CafeName)
	message := fmt.Sprintf("Reminder: your table at %s (%s) is booked for %s at %s.",
		p.CafeName, p.CafeAddress, p.Date, p.StartTime)
	if err := w.notifier.Notify(subject, message); err != nil {
		return err
	}

	// The reminder is consumed; clearing remind_at keeps a redelivery of
	// this message from notifying twice. Best-effort, the send already
	// happened.
	if err := w.bookings.ClearReminder(ctx, b.ID); err != nil {
		log.Printf("clear consumed reminder for booking %d failed: %v", b.ID, err)
	}
	return nil
}

func (w *Worker) handleManagerNotify(body []byte) error {
	var p notify.ManagerNotifyPayload
	if err := json.Unmarshal(body, &p); err != nil {
		log.Printf("dropping malformed manager notification payload: %v", err)
		return nil
	}

	action := "New booking"
	if p.Cancellation {
		action = "Booking cancelled"
	}
	subject := fmt.Sprintf("%s at %s", action, p.CafeName)
	message := fmt.Sprintf("%s #%d: %s, table for %d (%d guests), %s %s-%s.",
		action, p.BookingID, p.UserName, p.TableSeats, p.GuestCount,
		p.Date, p.StartTime, p.EndTime)
	return w.notifier.Notify(subject, message)
}

func (w *Worker) handleCascadeCancel(ctx context.Context, body []byte) error {
	var p notify.CascadeCancelPayload
	if err := json.Unmarshal(body, &p); err != nil {
		log.Printf("dropping malformed cascade cancel payload: %v", err)
		return nil
	}

	n, err := w.bookings.CancelForEntity(ctx, p.Entity, p.EntityID)
	if err != nil {
		return err
	}
	log.Printf("cascade cancel %s %d: %d bookings cancelled", p.Entity, p.EntityID, n)
	return nil
}

// RunSweeper periodically finishes confirmed bookings whose slot has
// ended. Keeps the table free even when no staff marks the visit done.
func (w *Worker) RunSweeper(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := w.bookings.FinishExpired(ctx, w.now())
			if err != nil {
				log.Printf("finish expired sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("finish expired sweep: %d bookings finished", n)
			}
		}
	}
}
