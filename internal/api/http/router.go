package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-management/internal/api/http/handlers"
	"github.com/spec-kit/ticket-management/internal/auth"
	"github.com/spec-kit/ticket-management/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes with their role whitelists.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.Me)
	users.Put("/me", cfg.Users.UpdateMe)
	users.Get("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/", auth.RequireRole(domain.RoleCustomer), cfg.Tickets.CreateTicket)
	tickets.Get("/my", cfg.Tickets.MyTickets)
	tickets.Get("/", auth.RequireRole(domain.RoleAgent, domain.RoleAdmin), cfg.Tickets.ListTickets)
	tickets.Get("/:id", auth.RequireRole(domain.RoleCustomer, domain.RoleAgent, domain.RoleAdmin), cfg.Tickets.GetTicket)
	tickets.Patch("/:id", auth.RequireRole(domain.RoleAgent, domain.RoleAdmin), cfg.Tickets.UpdateTicket)
	tickets.Patch("/:id/assign", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.AssignTicket)
}
