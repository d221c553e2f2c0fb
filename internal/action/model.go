package action

import (
	"net/http"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "action_not_found", "action not found")

// Action is a promotion or special offer run by a cafe.
type Action struct {
	ID          int64
	CafeID      int64
	Name        string
	Description *string
	PhotoID     *string // media UUID
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines filter options for listing actions.
type Filter struct {
	CafeID       int64
	ShowInactive bool

	Page     int
	PageSize int
}
