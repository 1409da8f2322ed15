package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// BranchRepository manages branch persistence.
type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) error
	Update(ctx context.Context, branch *domain.Branch) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	List(ctx context.Context, zoneID *string) ([]domain.Branch, error)
}

type branchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository builds the repository.
func NewBranchRepository(pool *pgxpool.Pool) BranchRepository {
	return &branchRepository{pool: pool}
}

func (r *branchRepository) Create(ctx context.Context, branch *domain.Branch) error {
	const query = `
        INSERT INTO branches (zone_id, name, address)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		branch.ZoneID,
		branch.Name,
		branch.Address,
	).Scan(&branch.ID, &branch.CreatedAt, &branch.UpdatedAt)
}

func (r *branchRepository) Update(ctx context.Context, branch *domain.Branch) error {
	const query = `
        UPDATE branches SET zone_id=$1, name=$2, address=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, branch.ZoneID, branch.Name, branch.Address, branch.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *branchRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM branches WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	const query = `
        SELECT id, zone_id, name, address, created_at, updated_at
        FROM branches WHERE id=$1`
	var branch domain.Branch
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&branch.ID,
		&branch.ZoneID,
		&branch.Name,
		&branch.Address,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) List(ctx context.Context, zoneID *string) ([]domain.Branch, error) {
	query := `
        SELECT id, zone_id, name, address, created_at, updated_at
        FROM branches`
	args := []any{}
	if zoneID != nil {
		query += ` WHERE zone_id=$1`
		args = append(args, *zoneID)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Branch
	for rows.Next() {
		var branch domain.Branch
		if err := rows.Scan(&branch.ID, &branch.ZoneID, &branch.Name, &branch.Address, &branch.CreatedAt, &branch.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, branch)
	}
	return result, rows.Err()
}
