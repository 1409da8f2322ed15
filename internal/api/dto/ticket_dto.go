package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	CategoryID  string                `json:"categoryId"`
	AssigneeID  *string               `json:"assigneeId"`
	ParentID    *string               `json:"parentId"`
	SLAID       *string               `json:"slaId"`
	Tags        []string              `json:"tags"`
}

// UpdateTicketRequest is a partial update; absent fields are untouched. An
// empty-string assigneeId, parentId or slaId clears the reference.
type UpdateTicketRequest struct {
	Title           *string                `json:"title"`
	Description     *string                `json:"description"`
	Status          *domain.TicketStatus   `json:"status"`
	Priority        *domain.TicketPriority `json:"priority"`
	CategoryID      *string                `json:"categoryId"`
	AssigneeID      *string                `json:"assigneeId"`
	ParentID        *string                `json:"parentId"`
	SLAID           *string                `json:"slaId"`
	EscalationLevel *int                   `json:"escalationLevel"`
	EscalatedTo     *string                `json:"escalatedTo"`
	BreachedSLA     *bool                  `json:"breachedSla"`
	Tags            *[]string              `json:"tags"`
}

// TicketResponse is the full ticket wire shape including display joins.
type TicketResponse struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Status          domain.TicketStatus   `json:"status"`
	Priority        domain.TicketPriority `json:"priority"`
	CategoryID      string                `json:"categoryId"`
	CategoryName    string                `json:"category"`
	AssigneeID      *string               `json:"assigneeId"`
	AssigneeName    *string               `json:"assignee"`
	CreatorID       string                `json:"creatorId"`
	ParentID        *string               `json:"parentId"`
	ChildTicketIDs  []string              `json:"childTicketIds"`
	SLAID           *string               `json:"slaId"`
	SLADueDate      *time.Time            `json:"slaDueDate"`
	EscalationLevel int                   `json:"escalationLevel"`
	EscalatedTo     string                `json:"escalatedTo"`
	BreachedSLA     bool                  `json:"breachedSla"`
	Tags            []string              `json:"tags"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body     string `json:"body"`
	Internal bool   `json:"internal"`
}

// CommentResponse wire shape.
type CommentResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryResponse wire shape for audit entries.
type HistoryResponse struct {
	ID          string            `json:"id"`
	TicketID    string            `json:"ticketId"`
	ChangedByID *string           `json:"changedById"`
	ChangeType  domain.ChangeType `json:"changeType"`
	OldValue    map[string]any    `json:"oldValue"`
	NewValue    map[string]any    `json:"newValue"`
	CreatedAt   time.Time         `json:"createdAt"`
}
