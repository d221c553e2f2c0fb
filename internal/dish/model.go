package dish

import (
	"net/http"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "dish_not_found", "dish not found")
	ErrInvalidPrice = apperror.New(http.StatusBadRequest, "invalid_price", "price must be positive")
)

// Dish is a menu item of a cafe. Prices are stored in minor currency
// units to keep arithmetic exact.
type Dish struct {
	ID          int64
	CafeID      int64
	Name        string
	Description *string
	PriceCents  int64
	PhotoID     *string // media UUID
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines filter options for listing dishes.
type Filter struct {
	CafeID       int64
	ShowInactive bool

	Page     int
	PageSize int
}
