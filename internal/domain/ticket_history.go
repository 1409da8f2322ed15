package domain

import "time"

// ChangeType classifies ticket history entries.
type ChangeType string

const (
	ChangeTypeStatus     ChangeType = "status"
	ChangeTypePriority   ChangeType = "priority"
	ChangeTypeAssignee   ChangeType = "assignee"
	ChangeTypeEscalation ChangeType = "escalation"
)

// TicketHistory is an audit entry for a ticket mutation. Escalation entries
// are written by the evaluator as well as by manual overrides.
type TicketHistory struct {
	ID          string
	TicketID    string
	ChangedByID *string
	ChangeType  ChangeType
	OldValue    map[string]any
	NewValue    map[string]any
	CreatedAt   time.Time
}
