package http

import (
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/slot"
)

type SlotResponse struct {
	ID          int64     `json:"id"`
	CafeID      int64     `json:"cafe_id"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewResponse(s *slot.Slot) SlotResponse {
	return SlotResponse{
		ID:          s.ID,
		CafeID:      s.CafeID,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Description: s.Description,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type ListSlotsRequest struct {
	CafeID       int64 `form:"cafe_id" binding:"omitempty,min=1"`
	ShowInactive bool  `form:"show_inactive"`
	Page         int   `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize     int   `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type CreateRequest struct {
	CafeID      int64   `json:"cafe_id" binding:"required,min=1"`
	StartTime   string  `json:"start_time" binding:"required,len=5"`
	EndTime     string  `json:"end_time" binding:"required,len=5"`
	Description *string `json:"description" binding:"omitempty,max=512"`
}

type UpdateRequest struct {
	StartTime   *string `json:"start_time" binding:"omitempty,len=5"`
	EndTime     *string `json:"end_time" binding:"omitempty,len=5"`
	Description *string `json:"description" binding:"omitempty,max=512"`
	Active      *bool   `json:"active"`
}
