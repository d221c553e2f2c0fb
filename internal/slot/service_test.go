package slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbistro/cafe-booking-backend/internal/cafe"
	"github.com/openbistro/cafe-booking-backend/internal/notify"
)

type fakeRepo struct {
	slots   map[int64]*Slot
	nextID  int64
	overlap bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slots: map[int64]*Slot{}, nextID: 1}
}

func (r *fakeRepo) Create(ctx context.Context, s *Slot) error {
	s.ID = r.nextID
	r.nextID++
	clone := *s
	r.slots[s.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) Update(ctx context.Context, s *Slot) error {
	if _, ok := r.slots[s.ID]; !ok {
		return ErrNotFound
	}
	clone := *s
	r.slots[s.ID] = &clone
	return nil
}

func (r *fakeRepo) SetActive(ctx context.Context, id int64, active bool) error {
	s, ok := r.slots[id]
	if !ok {
		return ErrNotFound
	}
	s.Active = active
	return nil
}

func (r *fakeRepo) HasOverlap(ctx context.Context, cafeID int64, start, end string, excludeID int64) (bool, error) {
	if r.overlap {
		return true, nil
	}
	for _, s := range r.slots {
		if s.ID == excludeID || s.CafeID != cafeID || !s.Active {
			continue
		}
		if s.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

type fakeCafeService struct {
	cafe *cafe.Cafe
	err  error
}

func (s *fakeCafeService) Create(ctx context.Context, input cafe.CreateInput) (*cafe.Cafe, error) {
	panic("not implemented")
}
func (s *fakeCafeService) GetByID(ctx context.Context, id int64) (*cafe.Cafe, error) {
	return s.cafe, s.err
}
func (s *fakeCafeService) GetActiveByID(ctx context.Context, id int64) (*cafe.Cafe, error) {
	return s.cafe, s.err
}
func (s *fakeCafeService) List(ctx context.Context, filter cafe.Filter) ([]*cafe.Cafe, int, error) {
	panic("not implemented")
}
func (s *fakeCafeService) Update(ctx context.Context, id int64, input cafe.UpdateInput) (*cafe.Cafe, error) {
	panic("not implemented")
}
func (s *fakeCafeService) SetPhoto(ctx context.Context, id int64, photoID *string) error {
	panic("not implemented")
}
func (s *fakeCafeService) Deactivate(ctx context.Context, id int64) error {
	panic("not implemented")
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	cafes := &fakeCafeService{cafe: &cafe.Cafe{ID: 1, Name: "Blue Door", Active: true}}
	scheduler := notify.NewScheduler(&noopQueue{}, time.Hour, time.UTC)
	return NewService(repo, cafes, scheduler), repo
}

type noopQueue struct{}

func (q *noopQueue) Enqueue(ctx context.Context, task string, payload any, eta time.Time) (string, error) {
	return "", nil
}
func (q *noopQueue) Revoke(ctx context.Context, handle string) error { return nil }
func (q *noopQueue) Close() error                                    { return nil }

func TestCreateSlot(t *testing.T) {
	svc, _ := newTestService()

	s, err := svc.Create(context.Background(), CreateInput{
		CafeID:    1,
		StartTime: "18:00",
		EndTime:   "20:00",
	})
	require.NoError(t, err)
	assert.True(t, s.Active)
	assert.Equal(t, "18:00", s.StartTime)
}

func TestCreateSlotInvalidRange(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct{ start, end string }{
		{"20:00", "18:00"}, // reversed
		{"18:00", "18:00"}, // zero length
		{"25:00", "26:00"}, // not a time of day
		{"6pm", "8pm"},     // wrong format
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), CreateInput{
			CafeID:    1,
			StartTime: tc.start,
			EndTime:   tc.end,
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange, "%s-%s", tc.start, tc.end)
	}
}

func TestCreateSlotOverlap(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{CafeID: 1, StartTime: "18:00", EndTime: "20:00"})
	require.NoError(t, err)

	// Partial overlap
	_, err = svc.Create(context.Background(), CreateInput{CafeID: 1, StartTime: "19:00", EndTime: "21:00"})
	assert.ErrorIs(t, err, ErrOverlap)

	// Contained
	_, err = svc.Create(context.Background(), CreateInput{CafeID: 1, StartTime: "18:30", EndTime: "19:30"})
	assert.ErrorIs(t, err, ErrOverlap)

	// Adjacent ranges touch but do not overlap
	_, err = svc.Create(context.Background(), CreateInput{CafeID: 1, StartTime: "20:00", EndTime: "22:00"})
	assert.NoError(t, err)
}

func TestUpdateSlotRevalidatesRange(t *testing.T) {
	svc, _ := newTestService()

	s, err := svc.Create(context.Background(), CreateInput{CafeID: 1, StartTime: "18:00", EndTime: "20:00"})
	require.NoError(t, err)

	bad := "17:00"
	_, err = svc.Update(context.Background(), s.ID, UpdateInput{EndTime: &bad})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	good := "21:00"
	updated, err := svc.Update(context.Background(), s.ID, UpdateInput{EndTime: &good})
	require.NoError(t, err)
	assert.Equal(t, "21:00", updated.EndTime)
}

func TestGetActiveByIDRejectsInactive(t *testing.T) {
	svc, repo := newTestService()

	s, err := svc.Create(context.Background(), CreateInput{CafeID: 1, StartTime: "18:00", EndTime: "20:00"})
	require.NoError(t, err)

	require.NoError(t, repo.SetActive(context.Background(), s.ID, false))

	_, err = svc.GetActiveByID(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrInactive)
}

func TestSlotOverlaps(t *testing.T) {
	s := &Slot{StartTime: "10:00", EndTime: "12:00"}

	assert.True(t, s.Overlaps("11:00", "13:00"))
	assert.True(t, s.Overlaps("09:00", "10:30"))
	assert.False(t, s.Overlaps("12:00", "14:00"))
	assert.False(t, s.Overlaps("08:00", "10:00"))
}
