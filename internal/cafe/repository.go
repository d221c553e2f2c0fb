package cafe

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, cafe *Cafe) error
	GetByID(ctx context.Context, id int64) (*Cafe, error)
	List(ctx context.Context, filter Filter) ([]*Cafe, int, error)
	Update(ctx context.Context, cafe *Cafe) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const cafeColumns = "id, name, address, phone, description, photo_id, active, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, c *Cafe) error {
	query, args, err := psql.Insert("public.cafes").
		Columns("name", "address", "phone", "description", "active").
		Values(c.Name, c.Address, c.Phone, c.Description, c.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create cafe query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrNameAlreadyUsed
		}
		return fmt.Errorf("create cafe failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Cafe, error) {
	query, args, err := psql.Select(cafeColumns).
		From("public.cafes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get cafe query failed: %w", err)
	}

	var c Cafe
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Address, &c.Phone, &c.Description,
		&c.PhotoID, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cafe failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Cafe, int, error) {
	query := psql.Select(cafeColumns + ", count(*) OVER() AS total_count").
		From("public.cafes")

	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Name + "%"})
	}
	if !filter.ShowInactive {
		query = query.Where(squirrel.Eq{"active": true})
	}

	query = query.OrderBy("name ASC")

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
		return nil, 0, fmt.Errorf("build list cafes query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cafes failed: %w", err)
	}
	defer rows.Close()

	var cafes []*Cafe
	var total int

	for rows.Next() {
		var c Cafe
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Address, &c.Phone, &c.Description,
			&c.PhotoID, &c.Active, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan cafe failed: %w", err)
		}
		cafes = append(cafes, &c)
	}

	return cafes, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Cafe) error {
	query, args, err := psql.Update("public.cafes").
		Set("name", c.Name).
		Set("address", c.Address).
		Set("phone", c.Phone).
		Set("description", c.Description).
		Set("photo_id", c.PhotoID).
		Set("active", c.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update cafe query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrNameAlreadyUsed
		}
		return fmt.Errorf("update cafe failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query, args, err := psql.Update("public.cafes").
		Set("active", active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set cafe active query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set cafe active failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
