package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-console/internal/api/http/handlers"
	"github.com/spec-kit/staff-console/internal/auth"
	"github.com/spec-kit/staff-console/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Console        *handlers.ConsoleHandler
	Users          *handlers.UsersResourceHandler
	Admins         *handlers.AdminsResourceHandler
	Departments    *handlers.DepartmentsResourceHandler
	Shifts         *handlers.ShiftsResourceHandler
	Stations       *handlers.StationsResourceHandler
	UserReports    *handlers.ReportsHandler
	AdminReports   *handlers.ReportsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Every protected group enumerates the
// full role set it accepts; there is no implicit hierarchy.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/api/auth/login", cfg.Auth.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Post("/auth/logout", cfg.Auth.Logout)
	api.Get("/session", cfg.Auth.Session)
	api.Patch("/session", cfg.Auth.UpdateSession)
	api.Get("/notices", cfg.Console.Notices)
	api.Get("/dropdowns", cfg.Console.Dropdowns)
	api.Post("/password/change", cfg.Console.ChangePassword)

	anyRole := auth.RequireRoles(domain.RoleUser, domain.RoleAdmin, domain.RoleSuperadmin)
	adminRoles := auth.RequireRoles(domain.RoleAdmin, domain.RoleSuperadmin)
	superOnly := auth.RequireRoles(domain.RoleSuperadmin)

	api.Get("/reports/user", anyRole, cfg.UserReports.List)
	api.Get("/reports/admin", adminRoles, cfg.AdminReports.List)

	registerResource(api.Group("/admin/users", adminRoles), cfg.Users)
	registerResource(api.Group("/departments", adminRoles), cfg.Departments)
	registerResource(api.Group("/shifts", adminRoles), cfg.Shifts)
	registerResource(api.Group("/admin/stations", adminRoles), cfg.Stations)
	registerResource(api.Group("/admins", superOnly), cfg.Admins)
}

// resourceRoutes is the route shape shared by all five CRUD screens.
type resourceRoutes interface {
	List(*fiber.Ctx) error
	Create(*fiber.Ctx) error
	Update(*fiber.Ctx) error
	Toggle(*fiber.Ctx) error
	Delete(*fiber.Ctx) error
	CancelModal(*fiber.Ctx) error
}

func registerResource(group fiber.Router, h resourceRoutes) {
	group.Get("", h.List)
	group.Post("", h.Create)
	group.Post("/modal/cancel", h.CancelModal)
	group.Patch("/:key/active", h.Toggle)
	group.Patch("/:key", h.Update)
	group.Delete("/:key", h.Delete)
}
