package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedTask struct {
	task    string
	payload any
	eta     time.Time
}

type fakeQueue struct {
	tasks    []recordedTask
	revoked  []string
	failures int // fail this many Enqueue calls before succeeding
}

func (q *fakeQueue) Enqueue(ctx context.Context, task string, payload any, eta time.Time) (string, error) {
	if q.failures > 0 {
		q.failures--
		return "", errors.New("broker unavailable")
	}
	q.tasks = append(q.tasks, recordedTask{task: task, payload: payload, eta: eta})
	return "handle-1", nil
}

func (q *fakeQueue) Revoke(ctx context.Context, handle string) error {
	q.revoked = append(q.revoked, handle)
	return nil
}

func (q *fakeQueue) Close() error { return nil }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestComputeFireAt(t *testing.T) {
	s := NewScheduler(&fakeQueue{}, 60*time.Minute, time.UTC)

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fireAt, err := s.ComputeFireAt(date, "14:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC), fireAt)
}

func TestComputeFireAtInvalidTime(t *testing.T) {
	s := NewScheduler(&fakeQueue{}, time.Hour, time.UTC)

	_, err := s.ComputeFireAt(time.Now(), "25:99")
	assert.Error(t, err)
}

func TestScheduleReminder(t *testing.T) {
	q := &fakeQueue{}
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s := NewSchedulerWithClock(q, 60*time.Minute, time.UTC, fixedClock(now))

	handle, fireAt, err := s.ScheduleReminder(context.Background(), ReminderPayload{
		BookingID: 42,
		Date:      "2025-06-01",
		StartTime: "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "handle-1", handle)
	assert.Equal(t, time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC), fireAt)

	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskBookingReminder, q.tasks[0].task)
	assert.Equal(t, fireAt, q.tasks[0].eta)
}

func TestScheduleReminderSkippedWhenFireTimePassed(t *testing.T) {
	q := &fakeQueue{}
	// Now is after the would-be fire time of 13:00.
	now := time.Date(2025, 6, 1, 13, 30, 0, 0, time.UTC)
	s := NewSchedulerWithClock(q, 60*time.Minute, time.UTC, fixedClock(now))

	_, _, err := s.ScheduleReminder(context.Background(), ReminderPayload{
		BookingID: 42,
		Date:      "2025-06-01",
		StartTime: "14:00",
	})
	assert.ErrorIs(t, err, ErrReminderSkipped)
	assert.Empty(t, q.tasks, "nothing should be enqueued for a past fire time")
}

func TestScheduleReminderRetriesTransientFailures(t *testing.T) {
	q := &fakeQueue{failures: 2}
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s := NewSchedulerWithClock(q, 60*time.Minute, time.UTC, fixedClock(now))

	handle, _, err := s.ScheduleReminder(context.Background(), ReminderPayload{
		BookingID: 7,
		Date:      "2025-06-01",
		StartTime: "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "handle-1", handle)
	assert.Len(t, q.tasks, 1)
}

func TestScheduleReminderGivesUpAfterRetries(t *testing.T) {
	q := &fakeQueue{failures: enqueueAttempts}
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s := NewSchedulerWithClock(q, 60*time.Minute, time.UTC, fixedClock(now))

	_, _, err := s.ScheduleReminder(context.Background(), ReminderPayload{
		BookingID: 7,
		Date:      "2025-06-01",
		StartTime: "14:00",
	})
	assert.Error(t, err)
	assert.Empty(t, q.tasks)
}

func TestCancelReminderEmptyHandleIsNoop(t *testing.T) {
	q := &fakeQueue{}
	s := NewScheduler(q, time.Hour, time.UTC)

	require.NoError(t, s.CancelReminder(context.Background(), ""))
	assert.Empty(t, q.revoked)

	require.NoError(t, s.CancelReminder(context.Background(), "abc"))
	assert.Equal(t, []string{"abc"}, q.revoked)
}

func TestNotifyManagerEnqueuesImmediately(t *testing.T) {
	q := &fakeQueue{}
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s := NewSchedulerWithClock(q, time.Hour, time.UTC, fixedClock(now))

	require.NoError(t, s.NotifyManager(context.Background(), ManagerNotifyPayload{BookingID: 1}))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskManagerNotify, q.tasks[0].task)
	assert.Equal(t, now, q.tasks[0].eta)
}

func TestCascadeCancel(t *testing.T) {
	q := &fakeQueue{}
	s := NewScheduler(q, time.Hour, time.UTC)

	require.NoError(t, s.CascadeCancel(context.Background(), "cafe", 9))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskCascadeCancel, q.tasks[0].task)

	p, ok := q.tasks[0].payload.(CascadeCancelPayload)
	require.True(t, ok)
	assert.Equal(t, "cafe", p.Entity)
	assert.Equal(t, int64(9), p.EntityID)
}
