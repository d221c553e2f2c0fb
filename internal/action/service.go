package action

import (
	"context"

	"github.com/openbistro/cafe-booking-backend/internal/cafe"
)

type Service interface {
	Create(ctx context.Context, input CreateInput) (*Action, error)
	GetByID(ctx context.Context, id int64) (*Action, error)
	List(ctx context.Context, filter Filter) ([]*Action, int, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Action, error)
	Deactivate(ctx context.Context, id int64) error
}

type CreateInput struct {
	CafeID      int64
	Name        string
	Description *string
	PhotoID     *string
}

type UpdateInput struct {
	Name        *string
	Description *string
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

func (s *service) Create(ctx context.Context, input CreateInput) (*Action, error) {
	// Promotions can only be created for active cafes.
	if _, err := s.cafeService.GetActiveByID(ctx, input.CafeID); err != nil {
		return nil, err
	}

	a := &Action{
		CafeID:      input.CafeID,
		Name:        input.Name,
		Description: input.Description,
		PhotoID:     input.PhotoID,
		Active:      true,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Action, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Action, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*Action, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		a.Name = *input.Name
	}
	if input.Description != nil {
		a.Description = input.Description
	}
	if input.PhotoID != nil {
		a.PhotoID = input.PhotoID
	}
	if input.Active != nil {
		a.Active = *input.Active
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, false)
}
