package http

import (
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/cafe"
)

type CafeResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Description *string   `json:"description,omitempty"`
	PhotoID     *string   `json:"photo_id,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewResponse(c *cafe.Cafe) CafeResponse {
	return CafeResponse{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		Phone:       c.Phone,
		Description: c.Description,
		PhotoID:     c.PhotoID,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type ListCafesRequest struct {
	Name         string `form:"name"`
	ShowInactive bool   `form:"show_inactive"`
	Page         int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type CreateRequest struct {
	Name        string  `json:"name" binding:"required,max=128"`
	Address     string  `json:"address" binding:"required,max=256"`
	Phone       string  `json:"phone" binding:"required,max=32"`
	Description *string `json:"description" binding:"omitempty,max=1024"`
}

type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=128"`
	Address     *string `json:"address" binding:"omitempty,max=256"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	Description *string `json:"description" binding:"omitempty,max=1024"`
	Active      *bool   `json:"active"`
}
