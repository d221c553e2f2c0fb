package notify

// Task names routed through the task queue. Payloads are denormalized so the
// worker can render a notification without extra lookups.
const (
	TaskBookingReminder = "booking.reminder"
	TaskManagerNotify   = "booking.manager_notify"
	TaskCascadeCancel   = "booking.cascade_cancel"
)

// ReminderPayload is delivered to the worker at the reminder fire time.
type ReminderPayload struct {
	BookingID   int64  `json:"booking_id"`
	UserID      int64  `json:"user_id"`
	UserEmail   string `json:"user_email,omitempty"`
	CafeName    string `json:"cafe_name"`
	CafeAddress string `json:"cafe_address"`
	Date        string `json:"date"`       // 2006-01-02
	StartTime   string `json:"start_time"` // 15:04
}

// ManagerNotifyPayload informs cafe staff about a new or cancelled booking.
type ManagerNotifyPayload struct {
	BookingID    int64  `json:"booking_id"`
	CafeID       int64  `json:"cafe_id"`
	CafeName     string `json:"cafe_name"`
	UserName     string `json:"user_name"`
	TableSeats   int    `json:"table_seats"`
	GuestCount   int    `json:"guest_count"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Cancellation bool   `json:"cancellation"`
}

// CascadeCancelPayload asks the worker to cancel all active bookings that
// reference a deactivated entity ("cafe", "table" or "slot").
type CascadeCancelPayload struct {
	Entity   string `json:"entity"`
	EntityID int64  `json:"entity_id"`
}
