package action

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbistro/cafe-booking-backend/internal/cafe"
)

type fakeRepo struct {
	actions map[int64]*Action
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{actions: map[int64]*Action{}, nextID: 1}
}

func (r *fakeRepo) Create(ctx context.Context, a *Action) error {
	a.ID = r.nextID
	r.nextID++
	clone := *a
	r.actions[a.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*Action, error) {
	a, ok := r.actions[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Action, int, error) {
	var out []*Action
	for _, a := range r.actions {
		if filter.CafeID > 0 && a.CafeID != filter.CafeID {
			continue
		}
		if !filter.ShowInactive && !a.Active {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, a *Action) error {
	if _, ok := r.actions[a.ID]; !ok {
		return ErrNotFound
	}
	clone := *a
	r.actions[a.ID] = &clone
	return nil
}

func (r *fakeRepo) SetActive(ctx context.Context, id int64, active bool) error {
	a, ok := r.actions[id]
	if !ok {
		return ErrNotFound
	}
	a.Active = active
	return nil
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

func newService() (*fakeCafeService, Service) {
	cafes := &fakeCafeService{cafe: &cafe.Cafe{ID: 1, Name: "Blue Door", Active: true}}
	return cafes, NewService(newFakeRepo(), cafes)
}

func TestCreateAction(t *testing.T) {
	_, svc := newService()

	desc := "Two courses for the price of one, weekdays 12-15"
	a, err := svc.Create(context.Background(), CreateInput{
		CafeID:      1,
		Name:        "Lunch special",
		Description: &desc,
	})
	require.NoError(t, err)
	assert.True(t, a.Active)
	assert.Equal(t, "Lunch special", a.Name)
}

func TestCreateActionInactiveCafe(t *testing.T) {
	cafes, svc := newService()
	cafes.cafe = nil
	cafes.err = cafe.ErrInactive

	_, err := svc.Create(context.Background(), CreateInput{CafeID: 1, Name: "Lunch special"})
	assert.ErrorIs(t, err, cafe.ErrInactive)
}

func TestUpdateAction(t *testing.T) {
	_, svc := newService()

	a, err := svc.Create(context.Background(), CreateInput{CafeID: 1, Name: "Lunch special"})
	require.NoError(t, err)

	name := "Happy hour"
	updated, err := svc.Update(context.Background(), a.ID, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Happy hour", updated.Name)
}

func TestDeactivateActionHidesItFromListings(t *testing.T) {
	_, svc := newService()

	a, err := svc.Create(context.Background(), CreateInput{CafeID: 1, Name: "Lunch special"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), a.ID))

	visible, _, err := svc.List(context.Background(), Filter{CafeID: 1})
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestUpdateMissingAction(t *testing.T) {
	_, svc := newService()

	name := "Happy hour"
	_, err := svc.Update(context.Background(), 42, UpdateInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}
