package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/cafe"
	"github.com/openbistro/cafe-booking-backend/internal/notify"
	"github.com/openbistro/cafe-booking-backend/internal/slot"
	"github.com/openbistro/cafe-booking-backend/internal/table"
)

// CreateRequest carries everything needed to admit a booking. UserName is
// forwarded to staff notifications and comes from the caller's identity.
type CreateRequest struct {
	UserID      int64
	UserName    string
	UserEmail   string
	TableID     int64
	SlotID      int64
	BookingDate time.Time
	GuestCount  int
	Note        *string
}

// Policy bounds how far ahead bookings may be placed.
type Policy struct {
	// MinLead is the minimum gap between now and the slot start.
	MinLead time.Duration
	// MaxAdvance is how far into the future the booking date may lie.
	MaxAdvance time.Duration
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id int64, actorID int64, isStaff bool) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Cancel(ctx context.Context, id int64, actorID int64, isStaff bool) (*Booking, error)
	Confirm(ctx context.Context, id int64) (*Booking, error)
	Finish(ctx context.Context, id int64) (*Booking, error)
	Archive(ctx context.Context, id int64, actorID int64, isStaff bool) (*Booking, error)
	Restore(ctx context.Context, id int64) (*Booking, error)
	FinishExpired(ctx context.Context) (int64, error)
	CancelForEntity(ctx context.Context, entity string, entityID int64) (int64, error)
}

type service struct {
	repo         Repository
	cafeService  cafe.Service
	tableService table.Service
	slotService  slot.Service
	scheduler    *notify.Scheduler
	policy       Policy
	loc          *time.Location
	now          func() time.Time
}

func NewService(
	repo Repository,
	cafeService cafe.Service,
	tableService table.Service,
	slotService slot.Service,
	scheduler *notify.Scheduler,
	policy Policy,
	loc *time.Location,
) Service {
	return NewServiceWithClock(repo, cafeService, tableService, slotService, scheduler, policy, loc, time.Now)
}

// NewServiceWithClock allows injecting a clock for deterministic tests.
func NewServiceWithClock(
	repo Repository,
	cafeService cafe.Service,
	tableService table.Service,
	slotService slot.Service,
	scheduler *notify.Scheduler,
	policy Policy,
	loc *time.Location,
	now func() time.Time,
) Service {
	return &service{
		repo:         repo,
		cafeService:  cafeService,
		tableService: tableService,
		slotService:  slotService,
		scheduler:    scheduler,
		policy:       policy,
		loc:          loc,
		now:          now,
	}
}

// references bundles the validated entities a booking points at.
type references struct {
	cafe  *cafe.Cafe
	table *table.Table
	slot  *slot.Slot
}

// resolveActive loads the table and slot, checks both plus the owning cafe
// are active, and checks table and slot belong to the same cafe.
func (s *service) resolveActive(ctx context.Context, tableID, slotID int64) (*references, error) {
	t, err := s.tableService.GetActiveByID(ctx, tableID)
	if err != nil {
		return nil, err
	}

	v, err := s.slotService.GetActiveByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if v.CafeID != t.CafeID {
		return nil, ErrCafeMismatch
	}

	c, err := s.cafeService.GetActiveByID(ctx, t.CafeID)
	if err != nil {
		return nil, err
	}

	return &references{cafe: c, table: t, slot: v}, nil
}

// slotStart combines the booking date with the slot start time of day.
func (s *service) slotStart(date time.Time, startTime string) (time.Time, error) {
	clock, err := time.Parse(slot.TimeLayout, startTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot start time %q: %w", startTime, err)
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		s.loc,
	), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	refs, err := s.resolveActive(ctx, req.TableID, req.SlotID)
	if err != nil {
		return nil, err
	}

	if req.GuestCount < 1 || req.GuestCount > refs.table.Seats {
		return nil, ErrGuestCount
	}
	if req.Note != nil && len(*req.Note) > MaxNoteLength {
		return nil, ErrNoteTooLong
	}

	start, err := s.slotStart(req.BookingDate, refs.slot.StartTime)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if start.Before(now.Add(s.policy.MinLead)) {
		return nil, ErrInvalidDate
	}
	if start.After(now.Add(s.policy.MaxAdvance)) {
		return nil, ErrInvalidDate
	}

	busy, err := s.repo.UserIsBusy(ctx, req.UserID, req.BookingDate, refs.slot.StartTime, refs.slot.EndTime)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, ErrDuplicateUserBooking
	}

	// Advisory pre-check for a friendly error; the unique index settles
	// concurrent inserts.
	occupied, err := s.repo.IsOccupied(ctx, req.TableID, req.SlotID, req.BookingDate)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, ErrSlotAlreadyBooked
	}

	b := &Booking{
		UserID:      req.UserID,
		CafeID:      refs.cafe.ID,
		TableID:     req.TableID,
		SlotID:      req.SlotID,
		BookingDate: req.BookingDate,
		GuestCount:  req.GuestCount,
		Status:      StatusNew,
		Note:        req.Note,
		Active:      true,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.scheduleReminder(ctx, b, refs, req.UserEmail)
	s.notifyManager(ctx, b, refs, req.UserName, false)

	return b, nil
}

// scheduleReminder is best-effort: a skipped or failed reminder never
// fails the booking.
func (s *service) scheduleReminder(ctx context.Context, b *Booking, refs *references, userEmail string) {
	handle, fireAt, err := s.scheduler.ScheduleReminder(ctx, notify.ReminderPayload{
		BookingID:   b.ID,
		UserID:      b.UserID,
		UserEmail:   userEmail,
		CafeName:    refs.cafe.Name,
		CafeAddress: refs.cafe.Address,
		Date:        b.BookingDate.Format(DateLayout),
		StartTime:   refs.slot.StartTime,
	})
	if err != nil {
		if errors.Is(err, notify.ErrReminderSkipped) {
			log.Printf("reminder for booking %d skipped: fire time already passed", b.ID)
		} else {
			log.Printf("schedule reminder for booking %d failed: %v", b.ID, err)
		}
		return
	}

	if err := s.repo.SetReminder(ctx, b.ID, handle, fireAt); err != nil {
		log.Printf("persist reminder for booking %d failed: %v", b.ID, err)
		return
	}
	b.ReminderTaskID = &handle
	b.RemindAt = &fireAt
}

func (s *service) notifyManager(ctx context.Context, b *Booking, refs *references, userName string, cancellation bool) {
	err := s.scheduler.NotifyManager(ctx, notify.ManagerNotifyPayload{
		BookingID:    b.ID,
		CafeID:       refs.cafe.ID,
		CafeName:     refs.cafe.Name,
		UserName:     userName,
		TableSeats:   refs.table.Seats,
		GuestCount:   b.GuestCount,
		Date:         b.BookingDate.Format(DateLayout),
		StartTime:    refs.slot.StartTime,
		EndTime:      refs.slot.EndTime,
		Cancellation: cancellation,
	})
	if err != nil {
		log.Printf("manager notification for booking %d failed: %v", b.ID, err)
	}
}

func (s *service) GetByID(ctx context.Context, id int64, actorID int64, isStaff bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isStaff && b.UserID != actorID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

// transition performs a compare-and-set status change after checking the
// transition table. A lost race surfaces as ErrInvalidTransition.
func (s *service) transition(ctx context.Context, b *Booking, to Status, clearReminder bool) (*Booking, error) {
	if !b.Status.CanTransitionTo(to) {
		return nil, ErrInvalidTransition
	}

	ok, err := s.repo.UpdateStatus(ctx, b.ID, b.Status, to, clearReminder)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	b.Status = to
	b.Active = to.Active()
	if clearReminder {
		b.ReminderTaskID = nil
		b.RemindAt = nil
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id int64, actorID int64, isStaff bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isStaff && b.UserID != actorID {
		return nil, ErrPermissionDenied
	}
	if !b.Active {
		return nil, ErrArchived
	}

	reminderHandle := ""
	if b.ReminderTaskID != nil {
		reminderHandle = *b.ReminderTaskID
	}

	b, err = s.transition(ctx, b, StatusCancelled, true)
	if err != nil {
		return nil, err
	}

	if err := s.scheduler.CancelReminder(ctx, reminderHandle); err != nil {
		log.Printf("revoke reminder for booking %d failed: %v", b.ID, err)
	}

	if refs, err := s.loadReferences(ctx, b); err == nil {
		s.notifyManager(ctx, b, refs, "", true)
	}

	return b, nil
}

// Confirm re-validates the referenced cafe, table and slot: a booking must
// not be confirmed against entities deactivated since it was placed.
func (s *service) Confirm(ctx context.Context, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !b.Active {
		return nil, ErrArchived
	}

	if _, err := s.resolveActive(ctx, b.TableID, b.SlotID); err != nil {
		return nil, err
	}

	return s.transition(ctx, b, StatusConfirmed, false)
}

func (s *service) Finish(ctx context.Context, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Active {
		return nil, ErrArchived
	}
	return s.transition(ctx, b, StatusFinished, false)
}

// Archive hides a settled booking from regular listings. Open bookings
// must be cancelled or finished first; their records stay visible.
func (s *service) Archive(ctx context.Context, id int64, actorID int64, isStaff bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isStaff && b.UserID != actorID {
		return nil, ErrPermissionDenied
	}
	if b.Status.Active() {
		return nil, ErrArchiveOpen
	}

	if err := s.repo.SetActive(ctx, b.ID, false); err != nil {
		return nil, err
	}
	b.Active = false
	return b, nil
}

// Restore brings an archived booking back into listings. The status stays
// terminal; restoring does not reopen the reservation. Admin only, guarded
// at the route level.
func (s *service) Restore(ctx context.Context, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetActive(ctx, b.ID, true); err != nil {
		return nil, err
	}
	b.Active = true
	return b, nil
}

// FinishExpired sweeps confirmed bookings whose slot already ended.
func (s *service) FinishExpired(ctx context.Context) (int64, error) {
	return s.repo.FinishExpired(ctx, s.now())
}

// CancelForEntity cancels all active bookings of a deactivated cafe,
// table or slot. Invoked by the worker.
func (s *service) CancelForEntity(ctx context.Context, entity string, entityID int64) (int64, error) {
	return s.repo.CancelForEntity(ctx, entity, entityID)
}

// loadReferences resolves the booking's entities without activity checks,
// for rendering notifications about existing bookings.
func (s *service) loadReferences(ctx context.Context, b *Booking) (*references, error) {
	t, err := s.tableService.GetByID(ctx, b.TableID)
	if err != nil {
		return nil, err
	}
	v, err := s.slotService.GetByID(ctx, b.SlotID)
	if err != nil {
		return nil, err
	}
	c, err := s.cafeService.GetByID(ctx, b.CafeID)
	if err != nil {
		return nil, err
	}
	return &references{cafe: c, table: t, slot: v}, nil
}
