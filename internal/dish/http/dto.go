package http

import (
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/dish"
)

type DishResponse struct {
	ID          int64     `json:"id"`
	CafeID      int64     `json:"cafe_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	PhotoID     *string   `json:"photo_id,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewResponse(d *dish.Dish) DishResponse {
	return DishResponse{
		ID:          d.ID,
		CafeID:      d.CafeID,
		Name:        d.Name,
		Description: d.Description,
		PriceCents:  d.PriceCents,
		PhotoID:     d.PhotoID,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type ListDishesRequest struct {
	CafeID       int64 `form:"cafe_id" binding:"omitempty,min=1"`
	ShowInactive bool  `form:"show_inactive"`
	Page         int   `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize     int   `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type CreateRequest struct {
	CafeID      int64   `json:"cafe_id" binding:"required,min=1"`
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	PriceCents  int64   `json:"price_cents" binding:"required,min=1"`
	PhotoID     *string `json:"photo_id" binding:"omitempty,uuid"`
}

type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	PriceCents  *int64  `json:"price_cents" binding:"omitempty,min=1"`
	PhotoID     *string `json:"photo_id" binding:"omitempty,uuid"`
	Active      *bool   `json:"active"`
}
