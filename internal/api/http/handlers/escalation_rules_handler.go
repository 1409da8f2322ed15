package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// EscalationRulesHandler manages escalation rules.
type EscalationRulesHandler struct {
	escalations *service.EscalationService
}

// NewEscalationRulesHandler constructs handler.
func NewEscalationRulesHandler(escalationService *service.EscalationService) *EscalationRulesHandler {
	return &EscalationRulesHandler{escalations: escalationService}
}

// List handles GET /escalation-rules.
func (h *EscalationRulesHandler) List(c *fiber.Ctx) error {
	rules, err := h.escalations.ListRules(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.EscalationRuleResponse, 0, len(rules))
	for i := range rules {
		items = append(items, escalationRuleResponse(&rules[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /escalation-rules/:id.
func (h *EscalationRulesHandler) Get(c *fiber.Ctx) error {
	rule, err := h.escalations.GetRule(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": escalationRuleResponse(rule)})
}

// Create handles POST /escalation-rules.
func (h *EscalationRulesHandler) Create(c *fiber.Ctx) error {
	var req dto.EscalationRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	rule, err := h.escalations.CreateRule(c.Context(), service.EscalationRuleInput{
		Name:                req.Name,
		Priority:            req.Priority,
		TriggerAfterMinutes: req.TriggerAfterMinutes,
		Level1Escalate:      req.Level1Escalate,
		Level2Escalate:      req.Level2Escalate,
		NotifyUserIDs:       req.NotifyUserIDs,
		AutoEscalate:        req.AutoEscalate,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": escalationRuleResponse(rule)})
}

// Update handles PATCH /escalation-rules/:id.
func (h *EscalationRulesHandler) Update(c *fiber.Ctx) error {
	var req dto.EscalationRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	rule, err := h.escalations.UpdateRule(c.Context(), c.Params("id"), service.EscalationRuleInput{
		Name:                req.Name,
		Priority:            req.Priority,
		TriggerAfterMinutes: req.TriggerAfterMinutes,
		Level1Escalate:      req.Level1Escalate,
		Level2Escalate:      req.Level2Escalate,
		NotifyUserIDs:       req.NotifyUserIDs,
		AutoEscalate:        req.AutoEscalate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": escalationRuleResponse(rule)})
}

// Delete handles DELETE /escalation-rules/:id.
func (h *EscalationRulesHandler) Delete(c *fiber.Ctx) error {
	if err := h.escalations.DeleteRule(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
