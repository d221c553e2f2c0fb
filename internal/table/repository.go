package table

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, table *Table) error
	GetByID(ctx context.Context, id int64) (*Table, error)
	List(ctx context.Context, filter Filter) ([]*Table, int, error)
	Update(ctx context.Context, table *Table) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const tableColumns = "id, cafe_id, seats, description, active, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, t *Table) error {
	query, args, err := psql.Insert("public.tables").
		Columns("cafe_id", "seats", "description", "active").
		Values(t.CafeID, t.Seats, t.Description, t.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create table query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("create table failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Table, error) {
	query, args, err := psql.Select(tableColumns).
		From("public.tables").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get table query failed: %w", err)
	}

	var t Table
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.CafeID, &t.Seats, &t.Description,
		&t.Active, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get table failed: %w", err)
	}
	return &t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Table, int, error) {
	query := psql.Select(tableColumns + ", count(*) OVER() AS total_count").
		From("public.tables")

	if filter.CafeID > 0 {
		query = query.Where(squirrel.Eq{"cafe_id": filter.CafeID})
	}
	if filter.MinSeats > 0 {
		query = query.Where(squirrel.GtOrEq{"seats": filter.MinSeats})
	}
	if !filter.ShowInactive {
		query = query.Where(squirrel.Eq{"active": true})
	}

	query = query.OrderBy("seats ASC", "id ASC")

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
		return nil, 0, fmt.Errorf("build list tables query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tables failed: %w", err)
	}
	defer rows.Close()

	var tables []*Table
	var total int

	for rows.Next() {
		var t Table
		if err := rows.Scan(
			&t.ID, &t.CafeID, &t.Seats, &t.Description,
			&t.Active, &t.CreatedAt, &t.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan table failed: %w", err)
		}
		tables = append(tables, &t)
	}

	return tables, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Table) error {
	query, args, err := psql.Update("public.tables").
		Set("seats", t.Seats).
		Set("description", t.Description).
		Set("active", t.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update table query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update table failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query, args, err := psql.Update("public.tables").
		Set("active", active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set table active query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set table active failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
