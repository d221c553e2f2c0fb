package cafe

import (
	"net/http"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "cafe_not_found", "cafe not found")
	ErrInactive        = apperror.New(http.StatusConflict, "cafe_inactive", "cafe is inactive")
	ErrNameAlreadyUsed = apperror.New(http.StatusConflict, "cafe_already_exists", "cafe with this name already exists")
)

// Cafe represents a cafe/restaurant that owns tables and time slots.
type Cafe struct {
	ID          int64
	Name        string
	Address     string
	Phone       string
	Description *string
	PhotoID     *string // media UUID
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines filter options for listing cafes.
type Filter struct {
	Name         string
	ShowInactive bool

	Page     int
	PageSize int
}
