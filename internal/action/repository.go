package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, action *Action) error
	GetByID(ctx context.Context, id int64) (*Action, error)
	List(ctx context.Context, filter Filter) ([]*Action, int, error)
	Update(ctx context.Context, action *Action) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const actionColumns = "id, cafe_id, name, description, photo_id, active, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, a *Action) error {
	query, args, err := psql.Insert("public.actions").
		Columns("cafe_id", "name", "description", "photo_id", "active").
		Values(a.CafeID, a.Name, a.Description, a.PhotoID, a.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create action query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("create action failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Action, error) {
	query, args, err := psql.Select(actionColumns).
		From("public.actions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get action query failed: %w", err)
	}

	var a Action
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.CafeID, &a.Name, &a.Description,
		&a.PhotoID, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get action failed: %w", err)
	}
	return &a, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Action, int, error) {
	query := psql.Select(actionColumns + ", count(*) OVER() AS total_count").
		From("public.actions")

	if filter.CafeID > 0 {
		query = query.Where(squirrel.Eq{"cafe_id": filter.CafeID})
	}
	if !filter.ShowInactive {
		query = query.Where(squirrel.Eq{"active": true})
	}

	query = query.OrderBy("created_at DESC", "id DESC")

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
		return nil, 0, fmt.Errorf("build list actions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list actions failed: %w", err)
	}
	defer rows.Close()

	var actions []*Action
	var total int

	for rows.Next() {
		var a Action
		if err := rows.Scan(
			&a.ID, &a.CafeID, &a.Name, &a.Description,
			&a.PhotoID, &a.Active, &a.CreatedAt, &a.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan action failed: %w", err)
		}
		actions = append(actions, &a)
	}

	return actions, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Action) error {
	query, args, err := psql.Update("public.actions").
		Set("name", a.Name).
		Set("description", a.Description).
		Set("photo_id", a.PhotoID).
		Set("active", a.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update action query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update action failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query, args, err := psql.Update("public.actions").
		Set("active", active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set action active query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set action active failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
