package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EscalationRuleRepository manages escalation rule persistence.
type EscalationRuleRepository interface {
	Create(ctx context.Context, rule *domain.EscalationRule) error
	Update(ctx context.Context, rule *domain.EscalationRule) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.EscalationRule, error)
	List(ctx context.Context) ([]domain.EscalationRule, error)
	ListAutoEscalate(ctx context.Context) ([]domain.EscalationRule, error)
}

type escalationRuleRepository struct {
	pool *pgxpool.Pool
}

// NewEscalationRuleRepository builds the repository.
func NewEscalationRuleRepository(pool *pgxpool.Pool) EscalationRuleRepository {
	return &escalationRuleRepository{pool: pool}
}

func (r *escalationRuleRepository) Create(ctx context.Context, rule *domain.EscalationRule) error {
	const query = `
        INSERT INTO escalation_rules (name, priority, trigger_after_minutes, level1_escalate, level2_escalate, notify_user_ids, auto_escalate)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		rule.Name,
		rule.Priority,
		rule.TriggerAfterMinutes,
		rule.Level1Escalate,
		rule.Level2Escalate,
		rule.NotifyUserIDs,
		rule.AutoEscalate,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *escalationRuleRepository) Update(ctx context.Context, rule *domain.EscalationRule) error {
	const query = `
        UPDATE escalation_rules SET name=$1, priority=$2, trigger_after_minutes=$3, level1_escalate=$4,
            level2_escalate=$5, notify_user_ids=$6, auto_escalate=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		rule.Name,
		rule.Priority,
		rule.TriggerAfterMinutes,
		rule.Level1Escalate,
		rule.Level2Escalate,
		rule.NotifyUserIDs,
		rule.AutoEscalate,
		rule.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *escalationRuleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM escalation_rules WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *escalationRuleRepository) GetByID(ctx context.Context, id string) (*domain.EscalationRule, error) {
	const query = `
        SELECT id, name, priority, trigger_after_minutes, level1_escalate, level2_escalate, notify_user_ids, auto_escalate, created_at, updated_at
        FROM escalation_rules WHERE id=$1`
	var rule domain.EscalationRule
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&rule.ID,
		&rule.Name,
		&rule.Priority,
		&rule.TriggerAfterMinutes,
		&rule.Level1Escalate,
		&rule.Level2Escalate,
		&rule.NotifyUserIDs,
		&rule.AutoEscalate,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *escalationRuleRepository) List(ctx context.Context) ([]domain.EscalationRule, error) {
	const query = `
        SELECT id, name, priority, trigger_after_minutes, level1_escalate, level2_escalate, notify_user_ids, auto_escalate, created_at, updated_at
        FROM escalation_rules ORDER BY priority ASC`
	return r.list(ctx, query)
}

// ListAutoEscalate returns only rules the background evaluator applies.
func (r *escalationRuleRepository) ListAutoEscalate(ctx context.Context) ([]domain.EscalationRule, error) {
	const query = `
        SELECT id, name, priority, trigger_after_minutes, level1_escalate, level2_escalate, notify_user_ids, auto_escalate, created_at, updated_at
        FROM escalation_rules WHERE auto_escalate = TRUE`
	return r.list(ctx, query)
}

func (r *escalationRuleRepository) list(ctx context.Context, query string) ([]domain.EscalationRule, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EscalationRule
	for rows.Next() {
		var rule domain.EscalationRule
		if err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.Priority,
			&rule.TriggerAfterMinutes,
			&rule.Level1Escalate,
			&rule.Level2Escalate,
			&rule.NotifyUserIDs,
			&rule.AutoEscalate,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rule)
	}
	return result, rows.Err()
}
