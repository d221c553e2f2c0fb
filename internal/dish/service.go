package dish

import (
	"context"

	"github.com/openbistro/cafe-booking-backend/internal/cafe"
)

type Service interface {
	Create(ctx context.Context, input CreateInput) (*Dish, error)
	GetByID(ctx context.Context, id int64) (*Dish, error)
	List(ctx context.Context, filter Filter) ([]*Dish, int, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Dish, error)
	Deactivate(ctx context.Context, id int64) error
}

type CreateInput struct {
	CafeID      int64
	Name        string
	Description *string
	PriceCents  int64
	PhotoID     *string
}

type UpdateInput struct {
	Name        *string
	Description *string
	PriceCents  *int64
	PhotoID     *string
	Active      *bool
}

type service struct {
	repo        Repository
	cafeService cafe.Service
}

func NewService(repo Repository, cafeService cafe.Service) Service {
	return &service{
		repo:        repo,
		cafeService: cafeService,
	}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Dish, error) {
	if input.PriceCents < 1 {
		return nil, ErrInvalidPrice
	}

	// Dishes can only be added to active cafes.
	if _, err := s.cafeService.GetActiveByID(ctx, input.CafeID); err != nil {
		return nil, err
	}

	d := &Dish{
		CafeID:      input.CafeID,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		PhotoID:     input.PhotoID,
		Active:      true,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Dish, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Dish, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*Dish, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		d.Name = *input.Name
	}
	if input.Description != nil {
		d.Description = input.Description
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 1 {
			return nil, ErrInvalidPrice
		}
		d.PriceCents = *input.PriceCents
	}
	if input.PhotoID != nil {
		d.PhotoID = input.PhotoID
	}
	if input.Active != nil {
		d.Active = *input.Active
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, false)
}
