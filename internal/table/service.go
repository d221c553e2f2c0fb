package table

import (
	"context"
	"log"

	"github.com/openbistro/cafe-booking-backend/internal/cafe"
	"github.com/openbistro/cafe-booking-backend/internal/notify"
)

type Service interface {
	Create(ctx context.Context, input CreateInput) (*Table, error)
	GetByID(ctx context.Context, id int64) (*Table, error)
	GetActiveByID(ctx context.Context, id int64) (*Table, error)
	List(ctx context.Context, filter Filter) ([]*Table, int, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Table, error)
	Deactivate(ctx context.Context, id int64) error
}

type CreateInput struct {
	CafeID      int64
	Seats       int
	Description *string
}

type UpdateInput struct {
	Seats       *int
	Description *string
	Active      *bool
}

type service struct {
	repo        Repository
	cafeService cafe.Service
	scheduler   *notify.Scheduler
}

func NewService(repo Repository, cafeService cafe.Service, scheduler *notify.Scheduler) Service {
	return &service{
		repo:        repo,
		cafeService: cafeService,
		scheduler:   scheduler,
	}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Table, error) {
	if input.Seats < 1 {
		return nil, ErrInvalidSeats
	}

	// Tables can only be added to active cafes.
	if _, err := s.cafeService.GetActiveByID(ctx, input.CafeID); err != nil {
		return nil, err
	}

	t := &Table{
		CafeID:      input.CafeID,
		Seats:       input.Seats,
		Description: input.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Table, error) {
	return s.repo.GetByID(ctx, id)
}

// GetActiveByID resolves a table and rejects inactive ones.
func (s *service) GetActiveByID(ctx context.Context, id int64) (*Table, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, ErrInactive
	}
	return t, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Table, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*Table, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Seats != nil {
		if *input.Seats < 1 {
			return nil, ErrInvalidSeats
		}
		t.Seats = *input.Seats
	}
	if input.Description != nil {
		t.Description = input.Description
	}

	wasActive := t.Active
	if input.Active != nil {
		t.Active = *input.Active
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if wasActive && !t.Active {
		s.cascadeCancel(ctx, t.ID)
	}
	return t, nil
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.cascadeCancel(ctx, id)
	return nil
}

func (s *service) cascadeCancel(ctx context.Context, id int64) {
	if err := s.scheduler.CascadeCancel(ctx, "table", id); err != nil {
		log.Printf("cascade cancel for table %d failed: %v", id, err)
	}
}
