package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ZonesHandler manages service zones.
type ZonesHandler struct {
	zones *service.ZoneService
}

// NewZonesHandler constructs handler.
func NewZonesHandler(zoneService *service.ZoneService) *ZonesHandler {
	return &ZonesHandler{zones: zoneService}
}

// List handles GET /zones.
func (h *ZonesHandler) List(c *fiber.Ctx) error {
	zones, err := h.zones.ListZones(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ZoneResponse, 0, len(zones))
	for i := range zones {
		items = append(items, zoneResponse(&zones[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /zones/:id.
func (h *ZonesHandler) Get(c *fiber.Ctx) error {
	zone, err := h.zones.GetZone(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": zoneResponse(zone)})
}

// Create handles POST /zones.
func (h *ZonesHandler) Create(c *fiber.Ctx) error {
	var req dto.ZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	zone, err := h.zones.CreateZone(c.Context(), service.ZoneInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": zoneResponse(zone)})
}

// Update handles PATCH /zones/:id.
func (h *ZonesHandler) Update(c *fiber.Ctx) error {
	var req dto.ZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	zone, err := h.zones.UpdateZone(c.Context(), c.Params("id"), service.ZoneInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": zoneResponse(zone)})
}

// Delete handles DELETE /zones/:id. Zones with branches are rejected.
func (h *ZonesHandler) Delete(c *fiber.Ctx) error {
	if err := h.zones.DeleteZone(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
