package booking

// Status is the lifecycle state of a booking.
type Status string

const (
	// StatusNew is the initial state of every booking.
	StatusNew Status = "new"
	// StatusConfirmed means cafe staff approved the booking.
	StatusConfirmed Status = "confirmed"
	// StatusCancelled is terminal; reached from new or confirmed.
	StatusCancelled Status = "cancelled"
	// StatusFinished is terminal; reached from confirmed after the visit.
	StatusFinished Status = "finished"
)

// transitions is the single source of truth for the booking lifecycle.
var transitions = map[Status][]Status{
	StatusNew:       {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusFinished, StatusCancelled},
	StatusCancelled: {},
	StatusFinished:  {},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Active reports whether the booking still occupies its table slot.
func (s Status) Active() bool {
	return s == StatusNew || s == StatusConfirmed
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether the transition s -> target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ActiveStatuses lists statuses that occupy a table slot.
func ActiveStatuses() []Status {
	return []Status{StatusNew, StatusConfirmed}
}
