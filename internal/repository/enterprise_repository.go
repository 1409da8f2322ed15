package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EnterpriseRepository manages the single-row installation config.
type EnterpriseRepository interface {
	Get(ctx context.Context) (*domain.EnterpriseConfig, error)
	Upsert(ctx context.Context, cfg *domain.EnterpriseConfig) error
}

type enterpriseRepository struct {
	pool *pgxpool.Pool
}

// NewEnterpriseRepository builds the repository.
func NewEnterpriseRepository(pool *pgxpool.Pool) EnterpriseRepository {
	return &enterpriseRepository{pool: pool}
}

func (r *enterpriseRepository) Get(ctx context.Context) (*domain.EnterpriseConfig, error) {
	const query = `
        SELECT id, company_name, support_email, logo_url, timezone, updated_at
        FROM enterprise_config LIMIT 1`
	var cfg domain.EnterpriseConfig
	if err := r.pool.QueryRow(ctx, query).Scan(
		&cfg.ID,
		&cfg.CompanyName,
		&cfg.SupportEmail,
		&cfg.LogoURL,
		&cfg.Timezone,
		&cfg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *enterpriseRepository) Upsert(ctx context.Context, cfg *domain.EnterpriseConfig) error {
	const query = `
        INSERT INTO enterprise_config (id, company_name, support_email, logo_url, timezone, updated_at)
        VALUES ('singleton', $1, $2, $3, $4, NOW())
        ON CONFLICT (id) DO UPDATE SET
            company_name=EXCLUDED.company_name,
            support_email=EXCLUDED.support_email,
            logo_url=EXCLUDED.logo_url,
            timezone=EXCLUDED.timezone,
            updated_at=NOW()
        RETURNING id, updated_at`
	return r.pool.QueryRow(ctx, query,
		cfg.CompanyName,
		cfg.SupportEmail,
		cfg.LogoURL,
		cfg.Timezone,
	).Scan(&cfg.ID, &cfg.UpdatedAt)
}
