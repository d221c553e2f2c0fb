package http

import (
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/table"
)

type TableResponse struct {
	ID          int64     `json:"id"`
	CafeID      int64     `json:"cafe_id"`
	Seats       int       `json:"seats"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewResponse(t *table.Table) TableResponse {
	return TableResponse{
		ID:          t.ID,
		CafeID:      t.CafeID,
		Seats:       t.Seats,
		Description: t.Description,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type ListTablesRequest struct {
	CafeID       int64 `form:"cafe_id" binding:"omitempty,min=1"`
	MinSeats     int   `form:"min_seats" binding:"omitempty,min=1"`
	ShowInactive bool  `form:"show_inactive"`
	Page         int   `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize     int   `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type CreateRequest struct {
	CafeID      int64   `json:"cafe_id" binding:"required,min=1"`
	Seats       int     `json:"seats" binding:"required,min=1"`
	Description *string `json:"description" binding:"omitempty,max=512"`
}

type UpdateRequest struct {
	Seats       *int    `json:"seats" binding:"omitempty,min=1"`
	Description *string `json:"description" binding:"omitempty,max=512"`
	Active      *bool   `json:"active"`
}
