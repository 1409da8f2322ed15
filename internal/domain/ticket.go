package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ValidStatus reports whether the value is a known status.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// ValidPriority reports whether the value is a known priority.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. Parent links form a tree;
// deleting a parent orphans its children rather than cascading.
type Ticket struct {
	ID              string
	Title           string
	Description     string
	Status          TicketStatus
	Priority        TicketPriority
	CategoryID      string
	AssigneeID      *string
	CreatorID       string
	ParentID        *string
	SLAID           *string
	SLADueDate      *time.Time
	EscalationLevel int
	EscalatedTo     string
	BreachedSLA     bool
	Tags            []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OpenIsh reports whether the ticket is still subject to escalation
// evaluation. Resolved and closed tickets freeze their escalation level.
func (t *Ticket) OpenIsh() bool {
	return t.Status == TicketStatusOpen || t.Status == TicketStatusInProgress
}
