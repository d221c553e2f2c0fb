package booking

import (
	"net/http"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "booking_not_found", "booking not found")
	ErrSlotAlreadyBooked    = apperror.New(http.StatusConflict, "slot_already_booked", "table is already booked for this slot and date")
	ErrDuplicateUserBooking = apperror.New(http.StatusConflict, "duplicate_user_booking", "user already has a booking overlapping this time")
	ErrInvalidTransition    = apperror.New(http.StatusConflict, "invalid_transition", "booking status transition is not allowed")
	ErrInvalidDate          = apperror.New(http.StatusBadRequest, "invalid_date", "booking date is outside the allowed window")
	ErrGuestCount           = apperror.New(http.StatusBadRequest, "invalid_guest_count", "guest count exceeds table seats")
	ErrCafeMismatch         = apperror.New(http.StatusBadRequest, "cafe_mismatch", "table and slot belong to different cafes")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission_denied", "permission denied")
	ErrNoteTooLong          = apperror.New(http.StatusBadRequest, "note_too_long", "booking note is too long")
	ErrArchived             = apperror.New(http.StatusConflict, "booking_archived", "booking is archived")
	ErrArchiveOpen          = apperror.New(http.StatusConflict, "booking_still_open", "an open booking cannot be archived")
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// MaxNoteLength caps the free-form note attached to a booking.
const MaxNoteLength = 256

// Booking reserves one table of a cafe for one slot on one date.
type Booking struct {
	ID          int64
	UserID      int64
	CafeID      int64
	TableID     int64
	SlotID      int64
	BookingDate time.Time // date only, midnight in the booking timezone
	GuestCount  int
	Status      Status
	Note        *string
	// Active is record-level visibility, not the status machine: terminal
	// bookings are archived automatically and admins may restore them.
	Active bool
	// ReminderTaskID is the queue handle of the pending reminder, if any.
	ReminderTaskID *string
	RemindAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter defines filter options for listing bookings.
type Filter struct {
	UserID   int64
	CafeID   int64
	TableID  int64
	Status   Status
	DateFrom *time.Time
	DateTo   *time.Time
	// Active filters on the archival flag when set.
	Active *bool

	Page     int
	PageSize int
}
