package table

import (
	"net/http"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "table_not_found", "table not found")
	ErrInactive     = apperror.New(http.StatusConflict, "table_inactive", "table is inactive")
	ErrInvalidSeats = apperror.New(http.StatusBadRequest, "invalid_seats_count", "seats count must be at least 1")
)

// Table is a bookable table belonging to a cafe.
type Table struct {
	ID          int64
	CafeID      int64
	Seats       int
	Description *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines filter options for listing tables.
type Filter struct {
	CafeID       int64
	MinSeats     int
	ShowInactive bool

	Page     int
	PageSize int
}
