package dish

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, dish *Dish) error
	GetByID(ctx context.Context, id int64) (*Dish, error)
	List(ctx context.Context, filter Filter) ([]*Dish, int, error)
	Update(ctx context.Context, dish *Dish) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const dishColumns = "id, cafe_id, name, description, price_cents, photo_id, active, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, d *Dish) error {
	query, args, err := psql.Insert("public.dishes").
		Columns("cafe_id", "name", "description", "price_cents", "photo_id", "active").
		Values(d.CafeID, d.Name, d.Description, d.PriceCents, d.PhotoID, d.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create dish query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return fmt.Errorf("create dish failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Dish, error) {
	query, args, err := psql.Select(dishColumns).
		From("public.dishes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get dish query failed: %w", err)
	}

	var d Dish
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&d.ID, &d.CafeID, &d.Name, &d.Description, &d.PriceCents,
		&d.PhotoID, &d.Active, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get dish failed: %w", err)
	}
	return &d, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Dish, int, error) {
	query := psql.Select(dishColumns + ", count(*) OVER() AS total_count").
		From("public.dishes")

	if filter.CafeID > 0 {
		query = query.Where(squirrel.Eq{"cafe_id": filter.CafeID})
	}
	if !filter.ShowInactive {
		query = query.Where(squirrel.Eq{"active": true})
	}

	query = query.OrderBy("name ASC", "id ASC")

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
		return nil, 0, fmt.Errorf("build list dishes query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list dishes failed: %w", err)
	}
	defer rows.Close()

	var dishes []*Dish
	var total int

	for rows.Next() {
		var d Dish
		if err := rows.Scan(
			&d.ID, &d.CafeID, &d.Name, &d.Description, &d.PriceCents,
			&d.PhotoID, &d.Active, &d.CreatedAt, &d.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan dish failed: %w", err)
		}
		dishes = append(dishes, &d)
	}

	return dishes, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, d *Dish) error {
	query, args, err := psql.Update("public.dishes").
		Set("name", d.Name).
		Set("description", d.Description).
		Set("price_cents", d.PriceCents).
		Set("photo_id", d.PhotoID).
		Set("active", d.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update dish query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update dish failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query, args, err := psql.Update("public.dishes").
		Set("active", active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set dish active query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set dish active failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
