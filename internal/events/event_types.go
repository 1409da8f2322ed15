package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketCommentAdded  EventType = "ticket_comment_added"
	EventTicketEscalated     EventType = "ticket_escalated"
)

// Event represents a domain event emitted by services. The evaluator emits
// escalation events; a notifier consumes them rather than the evaluator
// performing side effects inline.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticketId"`
	ActorID   *string     `json:"actorId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CategoryID string                `json:"categoryId"`
	Priority   domain.TicketPriority `json:"priority"`
	Title      string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"oldStatus"`
	NewStatus domain.TicketStatus `json:"newStatus"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeID *string `json:"assigneeId,omitempty"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID   string `json:"commentId"`
	Internal    bool   `json:"internal"`
	BodyPreview string `json:"bodyPreview"`
}

// TicketEscalatedPayload carries the escalation transition and the rule's
// notify list for the notifier to fan out.
type TicketEscalatedPayload struct {
	RuleID        string                `json:"ruleId"`
	Priority      domain.TicketPriority `json:"priority"`
	OldLevel      int                   `json:"oldLevel"`
	NewLevel      int                   `json:"newLevel"`
	EscalatedTo   string                `json:"escalatedTo"`
	NotifyUserIDs []string              `json:"notifyUserIds"`
}
