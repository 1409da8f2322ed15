package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// BranchesHandler manages branches inside zones.
type BranchesHandler struct {
	zones *service.ZoneService
}

// NewBranchesHandler constructs handler.
func NewBranchesHandler(zoneService *service.ZoneService) *BranchesHandler {
	return &BranchesHandler{zones: zoneService}
}

// List handles GET /branches, optionally filtered by zoneId.
func (h *BranchesHandler) List(c *fiber.Ctx) error {
	var zoneID *string
	if raw := c.Query("zoneId"); raw != "" {
		zoneID = &raw
	}
	branches, err := h.zones.ListBranches(c.Context(), zoneID)
	if err != nil {
		return err
	}
	items := make([]dto.BranchResponse, 0, len(branches))
	for i := range branches {
		items = append(items, branchResponse(&branches[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /branches/:id.
func (h *BranchesHandler) Get(c *fiber.Ctx) error {
	branch, err := h.zones.GetBranch(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": branchResponse(branch)})
}

// Create handles POST /branches.
func (h *BranchesHandler) Create(c *fiber.Ctx) error {
	var req dto.BranchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	branch, err := h.zones.CreateBranch(c.Context(), service.BranchInput{
		ZoneID:  req.ZoneID,
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": branchResponse(branch)})
}

// Update handles PATCH /branches/:id.
func (h *BranchesHandler) Update(c *fiber.Ctx) error {
	var req dto.BranchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	branch, err := h.zones.UpdateBranch(c.Context(), c.Params("id"), service.BranchInput{
		ZoneID:  req.ZoneID,
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": branchResponse(branch)})
}

// Delete handles DELETE /branches/:id.
func (h *BranchesHandler) Delete(c *fiber.Ctx) error {
	if err := h.zones.DeleteBranch(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
