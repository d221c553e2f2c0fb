package http

import (
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/action"
)

type ActionResponse struct {
	ID          int64     `json:"id"`
	CafeID      int64     `json:"cafe_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	PhotoID     *string   `json:"photo_id,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewResponse(a *action.Action) ActionResponse {
	return ActionResponse{
		ID:          a.ID,
		CafeID:      a.CafeID,
		Name:        a.Name,
		Description: a.Description,
		PhotoID:     a.PhotoID,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type ListActionsRequest struct {
	CafeID       int64 `form:"cafe_id" binding:"omitempty,min=1"`
	ShowInactive bool  `form:"show_inactive"`
	Page         int   `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize     int   `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type CreateRequest struct {
	CafeID      int64   `json:"cafe_id" binding:"required,min=1"`
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	PhotoID     *string `json:"photo_id" binding:"omitempty,uuid"`
}

type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	PhotoID     *string `json:"photo_id" binding:"omitempty,uuid"`
	Active      *bool   `json:"active"`
}
