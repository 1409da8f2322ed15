package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Users           *handlers.UsersHandler
	Zones           *handlers.ZonesHandler
	Branches        *handlers.BranchesHandler
	Categories      *handlers.CategoriesHandler
	SLAs            *handlers.SLAsHandler
	EscalationRules *handlers.EscalationRulesHandler
	Tickets         *handlers.TicketsHandler
	Enterprise      *handlers.EnterpriseHandler
	Reports         *handlers.ReportsHandler
	AuthMiddleware  *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Reference-data mutations require an
// admin or manager role; ticket routes are open to any authenticated
// account, with customer scoping applied in the handlers.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	staff := auth.RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleAgent)
	management := auth.RequireManagement()

	users := app.Group("/users", cfg.AuthMiddleware.Handle, staff)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Post("/", management, cfg.Users.Create)
	users.Patch("/:id", management, cfg.Users.Update)
	users.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Delete)

	zones := app.Group("/zones", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	zones.Get("/", cfg.Zones.List)
	zones.Get("/:id", cfg.Zones.Get)
	zones.Post("/", management, cfg.Zones.Create)
	zones.Patch("/:id", management, cfg.Zones.Update)
	zones.Delete("/:id", management, cfg.Zones.Delete)

	branches := app.Group("/branches", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	branches.Get("/", cfg.Branches.List)
	branches.Get("/:id", cfg.Branches.Get)
	branches.Post("/", management, cfg.Branches.Create)
	branches.Patch("/:id", management, cfg.Branches.Update)
	branches.Delete("/:id", management, cfg.Branches.Delete)

	categories := app.Group("/categories", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Post("/", management, cfg.Categories.Create)
	categories.Patch("/:id", management, cfg.Categories.Update)
	categories.Delete("/:id", management, cfg.Categories.Delete)

	slas := app.Group("/slas", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	slas.Get("/", cfg.SLAs.List)
	slas.Get("/:id", cfg.SLAs.Get)
	slas.Post("/", management, cfg.SLAs.Create)
	slas.Patch("/:id", management, cfg.SLAs.Update)
	slas.Delete("/:id", management, cfg.SLAs.Delete)

	rules := app.Group("/escalation-rules", cfg.AuthMiddleware.Handle, staff)
	rules.Get("/", cfg.EscalationRules.List)
	rules.Get("/:id", cfg.EscalationRules.Get)
	rules.Post("/", management, cfg.EscalationRules.Create)
	rules.Patch("/:id", management, cfg.EscalationRules.Update)
	rules.Delete("/:id", management, cfg.EscalationRules.Delete)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", management, cfg.Tickets.Delete)
	tickets.Get("/:id/comments", cfg.Tickets.ListComments)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Get("/:id/history", staff, cfg.Tickets.ListHistory)

	enterprise := app.Group("/enterprise", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	enterprise.Get("/", cfg.Enterprise.Get)
	enterprise.Put("/", auth.RequireRole(domain.RoleAdmin), cfg.Enterprise.Update)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle, staff)
	reports.Get("/summary", cfg.Reports.Summary)
}
