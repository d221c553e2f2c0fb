package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	// UpdateStatus performs a compare-and-set from -> to. Returns false
	// when the booking is missing or no longer in the from status.
	UpdateStatus(ctx context.Context, id int64, from, to Status, clearReminder bool) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) error
	SetReminder(ctx context.Context, id int64, taskID string, remindAt time.Time) error
	ClearReminder(ctx context.Context, id int64) error
	IsOccupied(ctx context.Context, tableID, slotID int64, date time.Time) (bool, error)
	UserIsBusy(ctx context.Context, userID int64, date time.Time, start, end string) (bool, error)
	FinishExpired(ctx context.Context, now time.Time) (int64, error)
	CancelForEntity(ctx context.Context, entity string, entityID int64) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
	// tz is the IANA zone that booking dates and slot times are local to.
	tz string
}

func NewPgxRepository(pool *pgxpool.Pool, loc *time.Location) Repository {
	return &pgxRepository{pool: pool, tz: loc.String()}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const bookingColumns = "id, user_id, cafe_id, table_id, slot_id, booking_date, guest_count, status, note, active, reminder_task_id, remind_at, created_at, updated_at"

// Create inserts the booking. The partial unique index on
// (table_id, slot_id, booking_date) WHERE status IN ('new','confirmed')
// is the authoritative guard against double booking.
func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "cafe_id", "table_id", "slot_id", "booking_date", "guest_count", "status", "note", "active").
		Values(b.UserID, b.CafeID, b.TableID, b.SlotID, b.BookingDate, b.GuestCount, b.Status, b.Note, b.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrSlotAlreadyBooked
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := psql.Select(bookingColumns).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.UserID, &b.CafeID, &b.TableID, &b.SlotID,
		&b.BookingDate, &b.GuestCount, &b.Status, &b.Note, &b.Active,
		&b.ReminderTaskID, &b.RemindAt, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := psql.Select(bookingColumns + ", count(*) OVER() AS total_count").
		From("public.bookings")

	if filter.UserID > 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.CafeID > 0 {
		query = query.Where(squirrel.Eq{"cafe_id": filter.CafeID})
	}
	if filter.TableID > 0 {
		query = query.Where(squirrel.Eq{"table_id": filter.TableID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"booking_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"booking_date": *filter.DateTo})
	}
	if filter.Active != nil {
		query = query.Where(squirrel.Eq{"active": *filter.Active})
	}

	query = query.OrderBy("booking_date DESC", "id DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.CafeID, &b.TableID, &b.SlotID,
			&b.BookingDate, &b.GuestCount, &b.Status, &b.Note, &b.Active,
			&b.ReminderTaskID, &b.RemindAt, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, from, to Status, clearReminder bool) (bool, error) {
	// Archival tracks the status machine: terminal bookings leave the
	// active record set automatically.
	query := psql.Update("public.bookings").
		Set("status", to).
		Set("active", to.Active()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from})

	if clearReminder {
		query = query.Set("reminder_task_id", nil).Set("remind_at", nil)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query, args, err := psql.Update("public.bookings").
		Set("active", active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set booking active query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set booking active failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetReminder(ctx context.Context, id int64, taskID string, remindAt time.Time) error {
	query, args, err := psql.Update("public.bookings").
		Set("reminder_task_id", taskID).
		Set("remind_at", remindAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set reminder query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set reminder failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearReminder drops the reminder handle and fire time, marking the
// reminder as consumed or revoked.
func (r *pgxRepository) ClearReminder(ctx context.Context, id int64) error {
	query, args, err := psql.Update("public.bookings").
		Set("reminder_task_id", nil).
		Set("remind_at", nil).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear reminder query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("clear reminder failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsOccupied reports whether an active booking already holds the
// (table, slot, date) tuple. Advisory fast path; the unique index
// decides races.
func (r *pgxRepository) IsOccupied(ctx context.Context, tableID, slotID int64, date time.Time) (bool, error) {
	query, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{
			"table_id":     tableID,
			"slot_id":      slotID,
			"booking_date": date,
			"status":       ActiveStatuses(),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build occupied query failed: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("occupied query failed: %w", err)
	}
	return true, nil
}

// UserIsBusy reports whether the user already holds an active booking on
// the date whose slot time-overlaps the half-open [start, end) range.
func (r *pgxRepository) UserIsBusy(ctx context.Context, userID int64, date time.Time, start, end string) (bool, error) {
	query, args, err := psql.Select("1").
		From("public.bookings b").
		Join("public.slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{
			"b.user_id":      userID,
			"b.booking_date": date,
			"b.status":       ActiveStatuses(),
		}).
		Where(squirrel.Lt{"s.start_time": end}).
		Where(squirrel.Gt{"s.end_time": start}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build user busy query failed: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("user busy query failed: %w", err)
	}
	return true, nil
}

// FinishExpired moves confirmed bookings whose slot already ended to
// finished. Slot times are stored as 15:04 text, hence the interval cast;
// the naive timestamp is qualified with the booking timezone so the
// comparison does not depend on the server's TimeZone setting.
func (r *pgxRepository) FinishExpired(ctx context.Context, now time.Time) (int64, error) {
	const sql = `
		UPDATE public.bookings b
		SET status = 'finished', active = false, updated_at = now()
		FROM public.slots s
		WHERE b.slot_id = s.id
		  AND b.status = 'confirmed'
		  AND ((b.booking_date::timestamp + (s.end_time || ':00')::interval) AT TIME ZONE $2) < $1`

	ct, err := r.pool.Exec(ctx, sql, now, r.tz)
	if err != nil {
		return 0, fmt.Errorf("finish expired bookings failed: %w", err)
	}
	return ct.RowsAffected(), nil
}

// CancelForEntity cancels all active bookings referencing a deactivated
// cafe, table or slot. Reminder handles are cleared; revocation of the
// queued tasks is best-effort and the worker re-checks state anyway.
func (r *pgxRepository) CancelForEntity(ctx context.Context, entity string, entityID int64) (int64, error) {
	var column string
	switch entity {
	case "cafe":
		column = "cafe_id"
	case "table":
		column = "table_id"
	case "slot":
		column = "slot_id"
	default:
		return 0, fmt.Errorf("unknown cancel entity %q", entity)
	}

	query, args, err := psql.Update("public.bookings").
		Set("status", StatusCancelled).
		Set("active", false).
		Set("reminder_task_id", nil).
		Set("remind_at", nil).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{column: entityID, "status": ActiveStatuses()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build cancel for entity query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("cancel bookings for %s %d failed: %w", entity, entityID, err)
	}
	return ct.RowsAffected(), nil
}
