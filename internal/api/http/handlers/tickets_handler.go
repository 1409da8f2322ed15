package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketsHandler manages ticket endpoints. Customers are scoped to tickets
// they created; staff see everything.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService}
}

// Create handles POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	detail, err := h.tickets.CreateTicket(c.Context(), principal.User.ID, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		CategoryID:  req.CategoryID,
		AssigneeID:  req.AssigneeID,
		ParentID:    req.ParentID,
		SLAID:       req.SLAID,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(detail)})
}

// List handles GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter, err := parseTicketFilter(c)
	if err != nil {
		return err
	}
	if !principal.IsStaff() {
		filter.CreatorID = &principal.User.ID
	}

	details, err := h.tickets.ListTickets(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(details))
	for i := range details {
		items = append(items, ticketResponse(&details[i]))
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{"limit": filter.Limit, "offset": filter.Offset},
	})
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	detail, err := h.tickets.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if !principal.IsStaff() && detail.Ticket.CreatorID != principal.User.ID {
		return apperrors.NewNotFound("ticket", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": ticketResponse(detail)})
}

// Update handles PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !principal.IsStaff() {
		if err := h.checkAccess(c, principal); err != nil {
			return err
		}
		if err := rejectEvaluatorFields(&req); err != nil {
			return err
		}
	}

	detail, err := h.tickets.UpdateTicket(c.Context(), principal.User.ID, c.Params("id"), service.TicketUpdateInput{
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		Priority:        req.Priority,
		CategoryID:      req.CategoryID,
		AssigneeID:      req.AssigneeID,
		ParentID:        req.ParentID,
		SLAID:           req.SLAID,
		EscalationLevel: req.EscalationLevel,
		EscalatedTo:     req.EscalatedTo,
		BreachedSLA:     req.BreachedSLA,
		Tags:            req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(detail)})
}

// Delete handles DELETE /tickets/:id. Child tickets survive as orphans.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if err := h.tickets.DeleteTicket(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddComment handles POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.checkAccess(c, principal); err != nil {
		return err
	}
	comment, err := h.tickets.AddComment(c.Context(), principal, c.Params("id"), req.Body, req.Internal)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// ListComments handles GET /tickets/:id/comments.
func (h *TicketsHandler) ListComments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.checkAccess(c, principal); err != nil {
		return err
	}
	comments, err := h.tickets.ListComments(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListHistory handles GET /tickets/:id/history.
func (h *TicketsHandler) ListHistory(c *fiber.Ctx) error {
	history, err := h.tickets.ListHistory(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.HistoryResponse, 0, len(history))
	for i := range history {
		items = append(items, historyResponse(&history[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// rejectEvaluatorFields blocks escalation overrides on the open patch route.
// Those fields belong to the evaluator and staff overrides.
func rejectEvaluatorFields(req *dto.UpdateTicketRequest) error {
	if req.EscalationLevel != nil || req.EscalatedTo != nil || req.BreachedSLA != nil {
		return apperrors.NewForbidden("escalation fields require a staff role")
	}
	return nil
}

// checkAccess hides tickets other customers own. Staff pass through.
func (h *TicketsHandler) checkAccess(c *fiber.Ctx, principal *auth.Principal) error {
	if principal.IsStaff() {
		return nil
	}
	detail, err := h.tickets.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if detail.Ticket.CreatorID != principal.User.ID {
		return apperrors.NewNotFound("ticket", map[string]any{"id": c.Params("id")})
	}
	return nil
}

func parseTicketFilter(c *fiber.Ctx) (repository.TicketFilter, error) {
	var filter repository.TicketFilter
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		filter.SearchTerm = &q
	}

	if raw := c.Query("creatorId"); raw != "" {
		filter.CreatorID = &raw
	}
	if raw := c.Query("assigneeId"); raw != "" {
		filter.AssigneeID = &raw
	}
	if raw := c.Query("categoryId"); raw != "" {
		filter.CategoryID = &raw
	}

	for _, part := range splitCSV(c.Query("status")) {
		status := domain.TicketStatus(part)
		if !domain.ValidStatus(status) {
			return filter, apperrors.NewValidationError("invalid status", map[string]any{"status": part})
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	for _, part := range splitCSV(c.Query("priority")) {
		priority := domain.TicketPriority(part)
		if !domain.ValidPriority(priority) {
			return filter, apperrors.NewValidationError("invalid priority", map[string]any{"priority": part})
		}
		filter.Priorities = append(filter.Priorities, priority)
	}

	var err error
	if filter.Limit, err = parseIntQuery(c, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = parseIntQuery(c, "offset"); err != nil {
		return filter, err
	}
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	return filter, nil
}

func parseIntQuery(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: raw})
	}
	return val, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
