package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbistro/cafe-booking-backend/internal/booking"
	"github.com/openbistro/cafe-booking-backend/internal/notify"
	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeBookingRepo struct {
	bookings   map[int64]*booking.Booking
	cancelled  []string
	cleared    []int64
	failCancel bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[int64]*booking.Booking{}}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *booking.Booking) error { return nil }

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	return nil, 0, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, from, to booking.Status, clearReminder bool) (bool, error) {
	return false, nil
}

func (r *fakeBookingRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return nil
}

func (r *fakeBookingRepo) SetReminder(ctx context.Context, id int64, taskID string, remindAt time.Time) error {
	return nil
}

func (r *fakeBookingRepo) ClearReminder(ctx context.Context, id int64) error {
	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	b.ReminderTaskID = nil
	b.RemindAt = nil
	r.cleared = append(r.cleared, id)
	return nil
}

func (r *fakeBookingRepo) IsOccupied(ctx context.Context, tableID, slotID int64, date time.Time) (bool, error) {
	return false, nil
}

func (r *fakeBookingRepo) UserIsBusy(ctx context.Context, userID int64, date time.Time, start, end string) (bool, error) {
	return false, nil
}

func (r *fakeBookingRepo) FinishExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeBookingRepo) CancelForEntity(ctx context.Context, entity string, entityID int64) (int64, error) {
	if r.failCancel {
		return 0, errors.New("db unavailable")
	}
	r.cancelled = append(r.cancelled, entity)
	return 3, nil
}

type fakeNotifier struct {
	subjects []string
}

func (n *fakeNotifier) Notify(subject, message string) error {
	n.subjects = append(n.subjects, subject)
	return nil
}

func reminderBody(t *testing.T, bookingID int64) []byte {
	t.Helper()
	body, err := json.Marshal(notify.ReminderPayload{
		BookingID: bookingID,
		CafeName:  "Blue Door",
		Date:      "2025-06-02",
		StartTime: "14:00",
	})
	require.NoError(t, err)
	return body
}

func TestHandleReminderNotifiesActiveBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	remindAt := time.Now().Add(time.Hour)
	repo.bookings[1] = &booking.Booking{ID: 1, Status: booking.StatusNew, RemindAt: &remindAt}

	notifier := &fakeNotifier{}
	w := New(nil, repo, notifier)

	require.NoError(t, w.handleReminder(context.Background(), reminderBody(t, 1)))
	require.Len(t, notifier.subjects, 1)
	assert.Contains(t, notifier.subjects[0], "Blue Door")

	// The consumed reminder is cleared so a redelivery sends nothing.
	assert.Equal(t, []int64{1}, repo.cleared)
	assert.Nil(t, repo.bookings[1].RemindAt)

	require.NoError(t, w.handleReminder(context.Background(), reminderBody(t, 1)))
	assert.Len(t, notifier.subjects, 1, "redelivered reminder must not notify twice")
}

func TestHandleReminderSkipsCancelledBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = &booking.Booking{ID: 1, Status: booking.StatusCancelled}

	notifier := &fakeNotifier{}
	w := New(nil, repo, notifier)

	require.NoError(t, w.handleReminder(context.Background(), reminderBody(t, 1)))
	assert.Empty(t, notifier.subjects, "cancelled booking must not trigger a reminder")
}

func TestHandleReminderSkipsRevokedReminder(t *testing.T) {
	repo := newFakeBookingRepo()
	// Active but reminder cleared: the queued task was revoked.
	repo.bookings[1] = &booking.Booking{ID: 1, Status: booking.StatusNew}

	notifier := &fakeNotifier{}
	w := New(nil, repo, notifier)

	require.NoError(t, w.handleReminder(context.Background(), reminderBody(t, 1)))
	assert.Empty(t, notifier.subjects)
}

func TestHandleReminderSkipsMissingBooking(t *testing.T) {
	notifier := &fakeNotifier{}
	w := New(nil, newFakeBookingRepo(), notifier)

	require.NoError(t, w.handleReminder(context.Background(), reminderBody(t, 42)))
	assert.Empty(t, notifier.subjects)
}

func TestHandleReminderDropsMalformedPayload(t *testing.T) {
	w := New(nil, newFakeBookingRepo(), &fakeNotifier{})

	// Malformed payloads are dropped, not retried.
	assert.NoError(t, w.handleReminder(context.Background(), []byte("{broken")))
}

func TestHandleManagerNotify(t *testing.T) {
	notifier := &fakeNotifier{}
	w := New(nil, newFakeBookingRepo(), notifier)

	body, err := json.Marshal(notify.ManagerNotifyPayload{
		BookingID: 5,
		CafeName:  "Blue Door",
		UserName:  "guest@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, w.handleManagerNotify(body))
	require.Len(t, notifier.subjects, 1)
	assert.Contains(t, notifier.subjects[0], "New booking")
}

func TestHandleManagerNotifyCancellation(t *testing.T) {
	notifier := &fakeNotifier{}
	w := New(nil, newFakeBookingRepo(), notifier)

	body, err := json.Marshal(notify.ManagerNotifyPayload{
		BookingID:    5,
		CafeName:     "Blue Door",
		Cancellation: true,
	})
	require.NoError(t, err)

	require.NoError(t, w.handleManagerNotify(body))
	require.Len(t, notifier.subjects, 1)
	assert.Contains(t, notifier.subjects[0], "Booking cancelled")
}

type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

func TestHandleRequeuesFailedTaskOnce(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.failCancel = true
	w := New(nil, repo, &fakeNotifier{})

	body, err := json.Marshal(notify.CascadeCancelPayload{Entity: "cafe", EntityID: 9})
	require.NoError(t, err)

	ack := &fakeAcknowledger{}
	w.handle(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Type:         notify.TaskCascadeCancel,
		Body:         body,
	})

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued, "first failure gets a second delivery")
}

func TestHandleDropsFailedTaskOnRedelivery(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.failCancel = true
	w := New(nil, repo, &fakeNotifier{})

	body, err := json.Marshal(notify.CascadeCancelPayload{Entity: "cafe", EntityID: 9})
	require.NoError(t, err)

	ack := &fakeAcknowledger{}
	w.handle(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Type:         notify.TaskCascadeCancel,
		Body:         body,
		Redelivered:  true,
	})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued, "second failure must not loop")
}

func TestHandleCascadeCancel(t *testing.T) {
	repo := newFakeBookingRepo()
	w := New(nil, repo, &fakeNotifier{})

	body, err := json.Marshal(notify.CascadeCancelPayload{Entity: "cafe", EntityID: 9})
	require.NoError(t, err)

	require.NoError(t, w.handleCascadeCancel(context.Background(), body))
	assert.Equal(t, []string{"cafe"}, repo.cancelled)
}
