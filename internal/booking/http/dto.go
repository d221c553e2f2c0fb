package http

import (
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/booking"
)

type BookingResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	CafeID      int64      `json:"cafe_id"`
	TableID     int64      `json:"table_id"`
	SlotID      int64      `json:"slot_id"`
	BookingDate string     `json:"booking_date"`
	GuestCount  int        `json:"guest_count"`
	Status      string     `json:"status"`
	Note        *string    `json:"note,omitempty"`
	Active      bool       `json:"active"`
	RemindAt    *time.Time `json:"remind_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		CafeID:      b.CafeID,
		TableID:     b.TableID,
		SlotID:      b.SlotID,
		BookingDate: b.BookingDate.Format(booking.DateLayout),
		GuestCount:  b.GuestCount,
		Status:      string(b.Status),
		Note:        b.Note,
		Active:      b.Active,
		RemindAt:    b.RemindAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

type CreateRequest struct {
	TableID     int64  `json:"table_id" binding:"required,min=1"`
	SlotID      int64  `json:"slot_id" binding:"required,min=1"`
	BookingDate string  `json:"booking_date" binding:"required,datetime=2006-01-02"`
	GuestCount  int     `json:"guest_count" binding:"required,min=1"`
	Note        *string `json:"note" binding:"omitempty,max=256"`
}

type ListBookingsRequest struct {
	UserID   int64  `form:"user_id" binding:"omitempty,min=1"`
	CafeID   int64  `form:"cafe_id" binding:"omitempty,min=1"`
	TableID  int64  `form:"table_id" binding:"omitempty,min=1"`
	Status   string `form:"status" binding:"omitempty,oneof=new confirmed cancelled finished"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	// IncludeArchived widens the listing to archived records.
	IncludeArchived bool `form:"include_archived"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
