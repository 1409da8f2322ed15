package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketFilter captures listing parameters. Limit defaults to 50 and is
// capped at 500.
type TicketFilter struct {
	CreatorID  *string
	AssigneeID *string
	CategoryID *string
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	SearchTerm *string
	Limit      int
	Offset     int
}

// TicketSummaryCounts aggregates ticket counts for the reports endpoint.
type TicketSummaryCounts struct {
	Total      int
	ByStatus   map[domain.TicketStatus]int
	ByPriority map[domain.TicketPriority]int
	Breached   int
	Escalated  int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	ListChildIDs(ctx context.Context, parentID string) ([]string, error)
	ListOpenish(ctx context.Context) ([]domain.Ticket, error)
	SummaryCounts(ctx context.Context) (*TicketSummaryCounts, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, status, priority, category_id, assignee_id, creator_id,
               parent_id, sla_id, sla_due_date, escalation_level, escalated_to, breached_sla, tags,
               created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, status, priority, category_id, assignee_id, creator_id,
            parent_id, sla_id, sla_due_date, escalation_level, escalated_to, breached_sla, tags)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.CategoryID,
		ticket.AssigneeID,
		ticket.CreatorID,
		ticket.ParentID,
		ticket.SLAID,
		ticket.SLADueDate,
		ticket.EscalationLevel,
		ticket.EscalatedTo,
		ticket.BreachedSLA,
		ticket.Tags,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, description=$2, status=$3, priority=$4, category_id=$5,
            assignee_id=$6, parent_id=$7, sla_id=$8, sla_due_date=$9, escalation_level=$10,
            escalated_to=$11, breached_sla=$12, tags=$13, updated_at=NOW()
        WHERE id=$14`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.CategoryID,
		ticket.AssigneeID,
		ticket.ParentID,
		ticket.SLAID,
		ticket.SLADueDate,
		ticket.EscalationLevel,
		ticket.EscalatedTo,
		ticket.BreachedSLA,
		ticket.Tags,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a ticket, detaching children first so they are orphaned
// rather than cascaded.
func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `UPDATE tickets SET parent_id=NULL WHERE parent_id=$1`, id); err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTicket(row)
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatorID != nil {
		args = append(args, *filter.CreatorID)
		clauses = append(clauses, fmt.Sprintf("creator_id=$%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("assignee_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListChildIDs(ctx context.Context, parentID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM tickets WHERE parent_id=$1 ORDER BY created_at ASC`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListOpenish returns tickets still subject to escalation evaluation.
func (r *ticketRepository) ListOpenish(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE status IN ('open','in-progress')`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) SummaryCounts(ctx context.Context) (*TicketSummaryCounts, error) {
	counts := &TicketSummaryCounts{
		ByStatus:   make(map[domain.TicketStatus]int),
		ByPriority: make(map[domain.TicketPriority]int),
	}

	rows, err := r.pool.Query(ctx, `SELECT status, priority, breached_sla, escalation_level, COUNT(*)
        FROM tickets GROUP BY status, priority, breached_sla, escalation_level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status   domain.TicketStatus
			priority domain.TicketPriority
			breached bool
			level    int
			count    int
		)
		if err := rows.Scan(&status, &priority, &breached, &level, &count); err != nil {
			return nil, err
		}
		counts.Total += count
		counts.ByStatus[status] += count
		counts.ByPriority[priority] += count
		if breached {
			counts.Breached += count
		}
		if level > 0 {
			counts.Escalated += count
		}
	}
	return counts, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CategoryID,
		&ticket.AssigneeID,
		&ticket.CreatorID,
		&ticket.ParentID,
		&ticket.SLAID,
		&ticket.SLADueDate,
		&ticket.EscalationLevel,
		&ticket.EscalatedTo,
		&ticket.BreachedSLA,
		&ticket.Tags,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}
