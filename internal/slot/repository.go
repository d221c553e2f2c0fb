package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, slot *Slot) error
	GetByID(ctx context.Context, id int64) (*Slot, error)
	List(ctx context.Context, filter Filter) ([]*Slot, int, error)
	Update(ctx context.Context, slot *Slot) error
	SetActive(ctx context.Context, id int64, active bool) error
	HasOverlap(ctx context.Context, cafeID int64, start, end string, excludeID int64) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const slotColumns = "id, cafe_id, start_time, end_time, description, active, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, s *Slot) error {
	query, args, err := psql.Insert("public.slots").
		Columns("cafe_id", "start_time", "end_time", "description", "active").
		Values(s.CafeID, s.StartTime, s.EndTime, s.Description, s.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create slot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("create slot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Slot, error) {
	query, args, err := psql.Select(slotColumns).
		From("public.slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get slot query failed: %w", err)
	}

	var s Slot
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.CafeID, &s.StartTime, &s.EndTime,
		&s.Description, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slot failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	query := psql.Select(slotColumns + ", count(*) OVER() AS total_count").
		From("public.slots")

	if filter.CafeID > 0 {
		query = query.Where(squirrel.Eq{"cafe_id": filter.CafeID})
	}
	if !filter.ShowInactive {
		query = query.Where(squirrel.Eq{"active": true})
	}

	query = query.OrderBy("start_time ASC", "id ASC")

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
		return nil, 0, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*Slot
	var total int

	for rows.Next() {
		var s Slot
		if err := rows.Scan(
			&s.ID, &s.CafeID, &s.StartTime, &s.EndTime,
			&s.Description, &s.Active, &s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan slot failed: %w", err)
		}
		slots = append(slots, &s)
	}

	return slots, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Slot) error {
	query, args, err := psql.Update("public.slots").
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("description", s.Description).
		Set("active", s.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query, args, err := psql.Update("public.slots").
		Set("active", active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set slot active query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set slot active failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HasOverlap reports whether any active slot of the cafe intersects the
// half-open [start, end) range. Stored times use the 15:04 format, so
// string comparison in SQL is chronologically correct.
func (r *pgxRepository) HasOverlap(ctx context.Context, cafeID int64, start, end string, excludeID int64) (bool, error) {
	query := psql.Select("1").
		From("public.slots").
		Where(squirrel.Eq{"cafe_id": cafeID, "active": true}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID > 0 {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build slot overlap query failed: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("slot overlap query failed: %w", err)
	}
	return true, nil
}
