package cafe

import (
	"context"
	"log"

	"github.com/openbistro/cafe-booking-backend/internal/notify"
)

type Service interface {
	Create(ctx context.Context, input CreateInput) (*Cafe, error)
	GetByID(ctx context.Context, id int64) (*Cafe, error)
	GetActiveByID(ctx context.Context, id int64) (*Cafe, error)
	List(ctx context.Context, filter Filter) ([]*Cafe, int, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Cafe, error)
	SetPhoto(ctx context.Context, id int64, photoID *string) error
	Deactivate(ctx context.Context, id int64) error
}

// CreateInput carries the fields accepted when registering a cafe.
type CreateInput struct {
	Name        string
	Address     string
	Phone       string
	Description *string
}

// UpdateInput carries optional updates; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Address     *string
	Phone       *string
	Description *string
	Active      *bool
}

type service struct {
	repo      Repository
	scheduler *notify.Scheduler
}

func NewService(repo Repository, scheduler *notify.Scheduler) Service {
	return &service{repo: repo, scheduler: scheduler}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Cafe, error) {
	c := &Cafe{
		Name:        input.Name,
		Address:     input.Address,
		Phone:       input.Phone,
		Description: input.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Cafe, error) {
	return s.repo.GetByID(ctx, id)
}

// GetActiveByID resolves a cafe and rejects inactive ones. Used by callers
// that need a bookable cafe rather than a record for administration.
func (s *service) GetActiveByID(ctx context.Context, id int64) (*Cafe, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, ErrInactive
	}
	return c, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Cafe, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*Cafe, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Address != nil {
		c.Address = *input.Address
	}
	if input.Phone != nil {
		c.Phone = *input.Phone
	}
	if input.Description != nil {
		c.Description = input.Description
	}

	wasActive := c.Active
	if input.Active != nil {
		c.Active = *input.Active
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if wasActive && !c.Active {
		s.cascadeCancel(ctx, c.ID)
	}
	return c, nil
}

func (s *service) SetPhoto(ctx context.Context, id int64, photoID *string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.PhotoID = photoID
	return s.repo.Update(ctx, c)
}

// Deactivate soft-deletes the cafe and asks the worker to cancel its
// pending bookings. The cascade is best-effort: a broker outage leaves the
// cafe deactivated with bookings to be swept later.
func (s *service) Deactivate(ctx context.Context, id int64) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.cascadeCancel(ctx, id)
	return nil
}

func (s *service) cascadeCancel(ctx context.Context, id int64) {
	if err := s.scheduler.CascadeCancel(ctx, "cafe", id); err != nil {
		log.Printf("cascade cancel for cafe %d failed: %v", id, err)
	}
}
