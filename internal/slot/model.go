package slot

import (
	"net/http"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "slot_not_found", "slot not found")
	ErrInactive         = apperror.New(http.StatusConflict, "slot_inactive", "slot is inactive")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "invalid_time_range", "start time must be before end time")
	ErrOverlap          = apperror.New(http.StatusConflict, "slot_overlap", "slot overlaps an existing slot of this cafe")
)

// TimeLayout is the wire and storage format for slot times of day.
// Lexicographic comparison of this format matches chronological order.
const TimeLayout = "15:04"

// Slot is a daily recurring booking window of a cafe, e.g. 18:00-20:00.
type Slot struct {
	ID          int64
	CafeID      int64
	StartTime   string // 15:04
	EndTime     string // 15:04
	Description *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overlaps reports whether two half-open time-of-day ranges intersect.
func (s *Slot) Overlaps(start, end string) bool {
	return s.StartTime < end && s.EndTime > start
}

// Filter defines filter options for listing slots.
type Filter struct {
	CafeID       int64
	ShowInactive bool

	Page     int
	PageSize int
}
