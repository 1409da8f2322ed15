package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SLARepository manages SLA persistence.
type SLARepository interface {
	Create(ctx context.Context, sla *domain.SLA) error
	Update(ctx context.Context, sla *domain.SLA) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.SLA, error)
	List(ctx context.Context) ([]domain.SLA, error)
	CountReferences(ctx context.Context, slaID string) (int, error)
}

type slaRepository struct {
	pool *pgxpool.Pool
}

// NewSLARepository builds the repository.
func NewSLARepository(pool *pgxpool.Pool) SLARepository {
	return &slaRepository{pool: pool}
}

func (r *slaRepository) Create(ctx context.Context, sla *domain.SLA) error {
	const query = `
        INSERT INTO slas (name, priority, response_minutes, resolution_minutes, category_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sla.Name,
		sla.Priority,
		sla.ResponseMinutes,
		sla.ResolutionMinutes,
		sla.CategoryID,
	).Scan(&sla.ID, &sla.CreatedAt, &sla.UpdatedAt)
}

func (r *slaRepository) Update(ctx context.Context, sla *domain.SLA) error {
	const query = `
        UPDATE slas SET name=$1, priority=$2, response_minutes=$3, resolution_minutes=$4, category_id=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		sla.Name,
		sla.Priority,
		sla.ResponseMinutes,
		sla.ResolutionMinutes,
		sla.CategoryID,
		sla.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *slaRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM slas WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *slaRepository) GetByID(ctx context.Context, id string) (*domain.SLA, error) {
	const query = `
        SELECT id, name, priority, response_minutes, resolution_minutes, category_id, created_at, updated_at
        FROM slas WHERE id=$1`
	var sla domain.SLA
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sla.ID,
		&sla.Name,
		&sla.Priority,
		&sla.ResponseMinutes,
		&sla.ResolutionMinutes,
		&sla.CategoryID,
		&sla.CreatedAt,
		&sla.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sla, nil
}

func (r *slaRepository) List(ctx context.Context) ([]domain.SLA, error) {
	const query = `
        SELECT id, name, priority, response_minutes, resolution_minutes, category_id, created_at, updated_at
        FROM slas ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SLA
	for rows.Next() {
		var sla domain.SLA
		if err := rows.Scan(
			&sla.ID,
			&sla.Name,
			&sla.Priority,
			&sla.ResponseMinutes,
			&sla.ResolutionMinutes,
			&sla.CategoryID,
			&sla.CreatedAt,
			&sla.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sla)
	}
	return result, rows.Err()
}

// CountReferences counts tickets and categories pointing at the SLA.
func (r *slaRepository) CountReferences(ctx context.Context, slaID string) (int, error) {
	const query = `
        SELECT (SELECT COUNT(*) FROM tickets WHERE sla_id=$1)
             + (SELECT COUNT(*) FROM categories WHERE sla_id=$1)`
	var count int
	err := r.pool.QueryRow(ctx, query, slaID).Scan(&count)
	return count, err
}
