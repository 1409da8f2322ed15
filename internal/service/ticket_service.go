package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	comments   repository.TicketCommentRepository
	history    repository.TicketHistoryRepository
	slaSvc     *SLAService
	dispatcher events.Dispatcher

	now func() time.Time
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	CategoryRepo repository.CategoryRepository
	UserRepo     repository.UserRepository
	CommentRepo  repository.TicketCommentRepository
	HistoryRepo  repository.TicketHistoryRepository
	SLAService   *SLAService
	Dispatcher   events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		categories: deps.CategoryRepo,
		users:      deps.UserRepo,
		comments:   deps.CommentRepo,
		history:    deps.HistoryRepo,
		slaSvc:     deps.SLAService,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	CategoryID  string
	AssigneeID  *string
	ParentID    *string
	SLAID       *string
	Tags        []string
}

// TicketUpdateInput is a partial update; nil fields are left untouched.
// Empty-string assignee or parent clears the reference.
type TicketUpdateInput struct {
	Title           *string
	Description     *string
	Status          *domain.TicketStatus
	Priority        *domain.TicketPriority
	CategoryID      *string
	AssigneeID      *string
	ParentID        *string
	SLAID           *string
	EscalationLevel *int
	EscalatedTo     *string
	BreachedSLA     *bool
	Tags            *[]string
}

// TicketDetail is a ticket joined with the display fields the client renders.
type TicketDetail struct {
	Ticket         domain.Ticket
	CategoryName   string
	AssigneeName   *string
	ChildTicketIDs []string
}

// CreateTicket creates a ticket, resolving the category default and SLA.
func (s *TicketService) CreateTicket(ctx context.Context, creatorID string, input TicketCreateInput) (*TicketDetail, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	category, err := s.resolveCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *input.AssigneeID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("assignee", map[string]any{"id": *input.AssigneeID})
			}
			return nil, apperrors.MapError(err)
		}
	}
	if input.ParentID != nil {
		if _, err := s.tickets.GetByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("parent ticket", map[string]any{"id": *input.ParentID})
			}
			return nil, apperrors.MapError(err)
		}
	}

	// Explicit SLA wins; an unknown id fails before any write.
	sla, err := s.slaSvc.Resolve(ctx, input.SLAID, category)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		CategoryID:  category.ID,
		AssigneeID:  input.AssigneeID,
		CreatorID:   creatorID,
		ParentID:    input.ParentID,
		SLADueDate:  DueDate(sla, now),
		Tags:        input.Tags,
	}
	if sla != nil {
		ticket.SLAID = &sla.ID
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  &creatorID,
		Payload: events.TicketCreatedPayload{
			CategoryID: ticket.CategoryID,
			Priority:   ticket.Priority,
			Title:      ticket.Title,
		},
	})
	return s.buildDetail(ctx, ticket)
}

// GetTicket fetches a ticket with its display joins.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return s.buildDetail(ctx, ticket)
}

// ListTickets returns tickets matching the filter.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]TicketDetail, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	details := make([]TicketDetail, 0, len(tickets))
	for i := range tickets {
		detail, err := s.buildDetail(ctx, &tickets[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// UpdateTicket applies a partial update. Escalation fields may be overridden
// manually, but the level may never decrease while the ticket is still open
// or in-progress.
func (s *TicketService) UpdateTicket(ctx context.Context, actorID, id string, input TicketUpdateInput) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := ticket.Status
	oldPriority := ticket.Priority
	oldAssignee := ticket.AssigneeID
	oldLevel := ticket.EscalationLevel

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apperrors.NewValidationError("title cannot be empty", nil)
		}
		ticket.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if !domain.ValidStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		ticket.Priority = *input.Priority
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("category", map[string]any{"id": *input.CategoryID})
			}
			return nil, apperrors.MapError(err)
		}
		ticket.CategoryID = *input.CategoryID
	}
	if input.AssigneeID != nil {
		if *input.AssigneeID == "" {
			ticket.AssigneeID = nil
		} else {
			if _, err := s.users.GetByID(ctx, *input.AssigneeID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, apperrors.NewNotFound("assignee", map[string]any{"id": *input.AssigneeID})
				}
				return nil, apperrors.MapError(err)
			}
			ticket.AssigneeID = input.AssigneeID
		}
	}
	if input.ParentID != nil {
		if *input.ParentID == "" {
			ticket.ParentID = nil
		} else {
			if err := s.checkParentCycle(ctx, ticket.ID, *input.ParentID); err != nil {
				return nil, err
			}
			ticket.ParentID = input.ParentID
		}
	}
	if input.SLAID != nil {
		if *input.SLAID == "" {
			ticket.SLAID = nil
			ticket.SLADueDate = nil
		} else {
			sla, err := s.slaSvc.Resolve(ctx, input.SLAID, nil)
			if err != nil {
				return nil, err
			}
			ticket.SLAID = &sla.ID
			ticket.SLADueDate = DueDate(sla, ticket.CreatedAt)
		}
	}
	if input.EscalationLevel != nil {
		if *input.EscalationLevel < ticket.EscalationLevel && ticket.OpenIsh() {
			return nil, apperrors.NewConflict("escalation level cannot decrease while ticket is open", map[string]any{
				"current":   ticket.EscalationLevel,
				"requested": *input.EscalationLevel,
			})
		}
		ticket.EscalationLevel = *input.EscalationLevel
	}
	if input.EscalatedTo != nil {
		ticket.EscalatedTo = *input.EscalatedTo
	}
	if input.BreachedSLA != nil {
		ticket.BreachedSLA = *input.BreachedSLA
	}
	if input.Tags != nil {
		ticket.Tags = *input.Tags
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if ticket.Status != oldStatus {
		s.recordChange(ctx, actorID, ticket.ID, domain.ChangeTypeStatus,
			map[string]any{"status": oldStatus}, map[string]any{"status": ticket.Status})
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			ActorID:  &actorID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	if ticket.Priority != oldPriority {
		s.recordChange(ctx, actorID, ticket.ID, domain.ChangeTypePriority,
			map[string]any{"priority": oldPriority}, map[string]any{"priority": ticket.Priority})
	}
	if !equalPtr(oldAssignee, ticket.AssigneeID) {
		s.recordChange(ctx, actorID, ticket.ID, domain.ChangeTypeAssignee,
			map[string]any{"assigneeId": oldAssignee}, map[string]any{"assigneeId": ticket.AssigneeID})
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: ticket.ID,
			ActorID:  &actorID,
			Payload:  events.TicketAssignedPayload{AssigneeID: ticket.AssigneeID},
		})
	}
	if ticket.EscalationLevel != oldLevel {
		s.recordChange(ctx, actorID, ticket.ID, domain.ChangeTypeEscalation,
			map[string]any{"escalationLevel": oldLevel},
			map[string]any{"escalationLevel": ticket.EscalationLevel, "escalatedTo": ticket.EscalatedTo})
	}

	return s.buildDetail(ctx, ticket)
}

// DeleteTicket removes a ticket; children are orphaned, not cascaded.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// AddComment appends a comment. Internal comments are restricted to staff.
func (s *TicketService) AddComment(ctx context.Context, principal *auth.Principal, ticketID, body string, internal bool) (*domain.TicketComment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}
	if internal && !principal.IsStaff() {
		return nil, apperrors.NewForbidden("internal comments require a staff role")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	comment := &domain.TicketComment{
		TicketID: ticket.ID,
		AuthorID: principal.User.ID,
		Body:     strings.TrimSpace(body),
		Internal: internal,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		ActorID:  &principal.User.ID,
		Payload: events.TicketCommentAddedPayload{
			CommentID:   comment.ID,
			Internal:    comment.Internal,
			BodyPreview: stringPreview(comment.Body, 120),
		},
	})
	return comment, nil
}

// ListComments returns a ticket's comments; internal notes are filtered out
// for customers.
func (s *TicketService) ListComments(ctx context.Context, principal *auth.Principal, ticketID string) ([]domain.TicketComment, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if principal.IsStaff() {
		return comments, nil
	}
	visible := make([]domain.TicketComment, 0, len(comments))
	for _, comment := range comments {
		if !comment.Internal {
			visible = append(visible, comment)
		}
	}
	return visible, nil
}

// ListHistory returns a ticket's audit trail.
func (s *TicketService) ListHistory(ctx context.Context, ticketID string) ([]domain.TicketHistory, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	history, err := s.history.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return history, nil
}

// resolveCategory looks up the requested category or falls back to the first
// active one when the request carries none.
func (s *TicketService) resolveCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	if categoryID != "" {
		category, err := s.categories.GetByID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("category", map[string]any{"id": categoryID})
			}
			return nil, apperrors.MapError(err)
		}
		return category, nil
	}
	category, err := s.categories.FirstActive(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("No category available", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// checkParentCycle rejects re-parenting that would make the ticket its own
// ancestor.
func (s *TicketService) checkParentCycle(ctx context.Context, ticketID, parentID string) error {
	current := parentID
	for current != "" {
		if current == ticketID {
			return apperrors.NewValidationError("parent link would create a cycle", map[string]any{
				"ticketId": ticketID,
				"parentId": parentID,
			})
		}
		parent, err := s.tickets.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("parent ticket", map[string]any{"id": current})
			}
			return apperrors.MapError(err)
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
	return nil
}

func (s *TicketService) buildDetail(ctx context.Context, ticket *domain.Ticket) (*TicketDetail, error) {
	detail := &TicketDetail{Ticket: *ticket}

	category, err := s.categories.GetByID(ctx, ticket.CategoryID)
	if err == nil {
		detail.CategoryName = category.Name
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if ticket.AssigneeID != nil {
		assignee, err := s.users.GetByID(ctx, *ticket.AssigneeID)
		if err == nil {
			detail.AssigneeName = &assignee.Name
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}

	children, err := s.tickets.ListChildIDs(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	detail.ChildTicketIDs = children
	return detail, nil
}

func (s *TicketService) recordChange(ctx context.Context, actorID, ticketID string, changeType domain.ChangeType, oldValue, newValue map[string]any) {
	if s.history == nil {
		return
	}
	entry := &domain.TicketHistory{
		TicketID:    ticketID,
		ChangedByID: &actorID,
		ChangeType:  changeType,
		OldValue:    oldValue,
		NewValue:    newValue,
	}
	_ = s.history.Create(ctx, entry)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if utf8.RuneCountInString(body) <= max {
		return body
	}
	runes := []rune(body)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
