package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// EnterpriseHandler exposes the installation configuration.
type EnterpriseHandler struct {
	enterprise *service.EnterpriseService
}

// NewEnterpriseHandler constructs handler.
func NewEnterpriseHandler(enterpriseService *service.EnterpriseService) *EnterpriseHandler {
	return &EnterpriseHandler{enterprise: enterpriseService}
}

// Get handles GET /enterprise.
func (h *EnterpriseHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.enterprise.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": enterpriseResponse(cfg)})
}

// Update handles PUT /enterprise.
func (h *EnterpriseHandler) Update(c *fiber.Ctx) error {
	var req dto.EnterpriseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	cfg, err := h.enterprise.Update(c.Context(), service.EnterpriseInput{
		CompanyName:  req.CompanyName,
		SupportEmail: req.SupportEmail,
		LogoURL:      req.LogoURL,
		Timezone:     req.Timezone,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": enterpriseResponse(cfg)})
}
