package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ZoneRepository manages zone persistence.
type ZoneRepository interface {
	Create(ctx context.Context, zone *domain.Zone) error
	Update(ctx context.Context, zone *domain.Zone) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Zone, error)
	List(ctx context.Context) ([]domain.Zone, error)
	CountBranches(ctx context.Context, zoneID string) (int, error)
}

type zoneRepository struct {
	pool *pgxpool.Pool
}

// NewZoneRepository builds the repository.
func NewZoneRepository(pool *pgxpool.Pool) ZoneRepository {
	return &zoneRepository{pool: pool}
}

func (r *zoneRepository) Create(ctx context.Context, zone *domain.Zone) error {
	const query = `
        INSERT INTO zones (name, description)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		zone.Name,
		zone.Description,
	).Scan(&zone.ID, &zone.CreatedAt, &zone.UpdatedAt)
}

func (r *zoneRepository) Update(ctx context.Context, zone *domain.Zone) error {
	const query = `
        UPDATE zones SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, zone.Name, zone.Description, zone.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *zoneRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM zones WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *zoneRepository) GetByID(ctx context.Context, id string) (*domain.Zone, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM zones WHERE id=$1`
	var zone domain.Zone
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&zone.ID,
		&zone.Name,
		&zone.Description,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepository) List(ctx context.Context) ([]domain.Zone, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM zones ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Zone
	for rows.Next() {
		var zone domain.Zone
		if err := rows.Scan(&zone.ID, &zone.Name, &zone.Description, &zone.CreatedAt, &zone.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, zone)
	}
	return result, rows.Err()
}

func (r *zoneRepository) CountBranches(ctx context.Context, zoneID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM branches WHERE zone_id=$1`, zoneID).Scan(&count)
	return count, err
}
