package slot

import (
	"context"
	"log"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/cafe"
	"github.com/openbistro/cafe-booking-backend/internal/notify"
)

type Service interface {
	Create(ctx context.Context, input CreateInput) (*Slot, error)
	GetByID(ctx context.Context, id int64) (*Slot, error)
	GetActiveByID(ctx context.Context, id int64) (*Slot, error)
	List(ctx context.Context, filter Filter) ([]*Slot, int, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Slot, error)
	Deactivate(ctx context.Context, id int64) error
}

type CreateInput struct {
	CafeID      int64
	StartTime   string
	EndTime     string
	Description *string
}

type UpdateInput struct {
	StartTime   *string
	EndTime     *string
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

func validateRange(start, end string) error {
	if _, err := time.Parse(TimeLayout, start); err != nil {
		return ErrInvalidTimeRange
	}
	if _, err := time.Parse(TimeLayout, end); err != nil {
		return ErrInvalidTimeRange
	}
	if start >= end {
		return ErrInvalidTimeRange
	}
	return nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Slot, error) {
	if err := validateRange(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	if _, err := s.cafeService.GetActiveByID(ctx, input.CafeID); err != nil {
		return nil, err
	}

	overlap, err := s.repo.HasOverlap(ctx, input.CafeID, input.StartTime, input.EndTime, 0)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrOverlap
	}

	v := &Slot{
		CafeID:      input.CafeID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Description: input.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Slot, error) {
	return s.repo.GetByID(ctx, id)
}

// GetActiveByID resolves a slot and rejects inactive ones.
func (s *service) GetActiveByID(ctx context.Context, id int64) (*Slot, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.Active {
		return nil, ErrInactive
	}
	return v, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*Slot, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.StartTime != nil {
		v.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		v.EndTime = *input.EndTime
	}
	if input.StartTime != nil || input.EndTime != nil {
		if err := validateRange(v.StartTime, v.EndTime); err != nil {
			return nil, err
		}
		overlap, err := s.repo.HasOverlap(ctx, v.CafeID, v.StartTime, v.EndTime, v.ID)
		if err != nil {
			return nil, err
		}
		if overlap {
			return nil, ErrOverlap
		}
	}

	if input.Description != nil {
		v.Description = input.Description
	}

	wasActive := v.Active
	if input.Active != nil {
		v.Active = *input.Active
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	if wasActive && !v.Active {
		s.cascadeCancel(ctx, v.ID)
	}
	return v, nil
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.cascadeCancel(ctx, id)
	return nil
}

func (s *service) cascadeCancel(ctx context.Context, id int64) {
	if err := s.scheduler.CascadeCancel(ctx, "slot", id); err != nil {
		log.Printf("cascade cancel for slot %d failed: %v", id, err)
	}
}
