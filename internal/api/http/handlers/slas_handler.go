package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// SLAsHandler manages SLA definitions.
type SLAsHandler struct {
	slas *service.SLAService
}

// NewSLAsHandler constructs handler.
func NewSLAsHandler(slaService *service.SLAService) *SLAsHandler {
	return &SLAsHandler{slas: slaService}
}

// List handles GET /slas.
func (h *SLAsHandler) List(c *fiber.Ctx) error {
	slas, err := h.slas.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.SLAResponse, 0, len(slas))
	for i := range slas {
		items = append(items, slaResponse(&slas[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /slas/:id.
func (h *SLAsHandler) Get(c *fiber.Ctx) error {
	sla, err := h.slas.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": slaResponse(sla)})
}

// Create handles POST /slas.
func (h *SLAsHandler) Create(c *fiber.Ctx) error {
	var req dto.SLARequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sla, err := h.slas.Create(c.Context(), service.SLAInput{
		Name:              req.Name,
		Priority:          req.Priority,
		ResponseMinutes:   req.ResponseMinutes,
		ResolutionMinutes: req.ResolutionMinutes,
		CategoryID:        req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": slaResponse(sla)})
}

// Update handles PATCH /slas/:id.
func (h *SLAsHandler) Update(c *fiber.Ctx) error {
	var req dto.SLARequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sla, err := h.slas.Update(c.Context(), c.Params("id"), service.SLAInput{
		Name:              req.Name,
		Priority:          req.Priority,
		ResponseMinutes:   req.ResponseMinutes,
		ResolutionMinutes: req.ResolutionMinutes,
		CategoryID:        req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": slaResponse(sla)})
}

// Delete handles DELETE /slas/:id. SLAs referenced by tickets or categories
// are rejected.
func (h *SLAsHandler) Delete(c *fiber.Ctx) error {
	if err := h.slas.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
