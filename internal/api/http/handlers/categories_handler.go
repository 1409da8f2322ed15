package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// CategoriesHandler manages ticket categories.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categoryService}
}

// List handles GET /categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResponse(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.categories.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(category)})
}

// Create handles POST /categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.categories.Create(c.Context(), service.CategoryInput{
		Name:   req.Name,
		Color:  req.Color,
		Icon:   req.Icon,
		SLAID:  req.SLAID,
		Active: req.Active,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": categoryResponse(category)})
}

// Update handles PATCH /categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.categories.Update(c.Context(), c.Params("id"), service.CategoryInput{
		Name:   req.Name,
		Color:  req.Color,
		Icon:   req.Icon,
		SLAID:  req.SLAID,
		Active: req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(category)})
}

// Delete handles DELETE /categories/:id. Categories referenced by tickets
// are rejected.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
