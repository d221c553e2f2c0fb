package dish

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbistro/cafe-booking-backend/internal/cafe"
)

type fakeRepo struct {
	dishes map[int64]*Dish
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{dishes: map[int64]*Dish{}, nextID: 1}
}

func (r *fakeRepo) Create(ctx context.Context, d *Dish) error {
	d.ID = r.nextID
	r.nextID++
	clone := *d
	r.dishes[d.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*Dish, error) {
	d, ok := r.dishes[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Dish, int, error) {
	var out []*Dish
	for _, d := range r.dishes {
		if filter.CafeID > 0 && d.CafeID != filter.CafeID {
			continue
		}
		if !filter.ShowInactive && !d.Active {
			continue
		}
		clone := *d
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, d *Dish) error {
	if _, ok := r.dishes[d.ID]; !ok {
		return ErrNotFound
	}
	clone := *d
	r.dishes[d.ID] = &clone
	return nil
}

func (r *fakeRepo) SetActive(ctx context.Context, id int64, active bool) error {
	d, ok := r.dishes[id]
	if !ok {
		return ErrNotFound
	}
	d.Active = active
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

func newService() (*fakeRepo, *fakeCafeService, Service) {
	repo := newFakeRepo()
	cafes := &fakeCafeService{cafe: &cafe.Cafe{ID: 1, Name: "Blue Door", Active: true}}
	return repo, cafes, NewService(repo, cafes)
}

func TestCreateDish(t *testing.T) {
	repo, _, svc := newService()

	d, err := svc.Create(context.Background(), CreateInput{
		CafeID:     1,
		Name:       "Shakshuka",
		PriceCents: 1250,
	})
	require.NoError(t, err)
	assert.True(t, d.Active)
	assert.Equal(t, int64(1250), d.PriceCents)

	stored, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shakshuka", stored.Name)
}

func TestCreateDishInvalidPrice(t *testing.T) {
	_, _, svc := newService()

	_, err := svc.Create(context.Background(), CreateInput{CafeID: 1, Name: "Free lunch", PriceCents: 0})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCreateDishInactiveCafe(t *testing.T) {
	_, cafes, svc := newService()
	cafes.cafe = nil
	cafes.err = cafe.ErrInactive

	_, err := svc.Create(context.Background(), CreateInput{CafeID: 1, Name: "Shakshuka", PriceCents: 1250})
	assert.ErrorIs(t, err, cafe.ErrInactive)
}

func TestUpdateDishRejectsInvalidPrice(t *testing.T) {
	_, _, svc := newService()

	d, err := svc.Create(context.Background(), CreateInput{CafeID: 1, Name: "Shakshuka", PriceCents: 1250})
	require.NoError(t, err)

	bad := int64(0)
	_, err = svc.Update(context.Background(), d.ID, UpdateInput{PriceCents: &bad})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestDeactivateDishHidesItFromListings(t *testing.T) {
	_, _, svc := newService()

	d, err := svc.Create(context.Background(), CreateInput{CafeID: 1, Name: "Shakshuka", PriceCents: 1250})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), d.ID))

	visible, _, err := svc.List(context.Background(), Filter{CafeID: 1})
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, _, err := svc.List(context.Background(), Filter{CafeID: 1, ShowInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeactivateMissingDish(t *testing.T) {
	_, _, svc := newService()

	err := svc.Deactivate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
