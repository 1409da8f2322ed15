package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CategoryRepository manages category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	FirstActive(ctx context.Context) (*domain.Category, error)
	CountTickets(ctx context.Context, categoryID string) (int, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository builds the repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, color, icon, sla_id, active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		category.Name,
		category.Color,
		category.Icon,
		category.SLAID,
		category.Active,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, color=$2, icon=$3, sla_id=$4, active=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		category.Name,
		category.Color,
		category.Icon,
		category.SLAID,
		category.Active,
		category.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const query = `
        SELECT id, name, color, icon, sla_id, active, created_at, updated_at
        FROM categories WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

// FirstActive returns the oldest active category, used as the default when a
// ticket is submitted without one.
func (r *categoryRepository) FirstActive(ctx context.Context) (*domain.Category, error) {
	const query = `
        SELECT id, name, color, icon, sla_id, active, created_at, updated_at
        FROM categories WHERE active = TRUE ORDER BY created_at ASC LIMIT 1`
	return r.fetchSingle(ctx, query)
}

func (r *categoryRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Category, error) {
	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&category.ID,
		&category.Name,
		&category.Color,
		&category.Icon,
		&category.SLAID,
		&category.Active,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `
        SELECT id, name, color, icon, sla_id, active, created_at, updated_at
        FROM categories ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Color,
			&category.Icon,
			&category.SLAID,
			&category.Active,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) CountTickets(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE category_id=$1`, categoryID).Scan(&count)
	return count, err
}
