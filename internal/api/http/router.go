package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/api/http/handlers"
	"github.com/spec-kit/user-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Validation runs before the auth guard
// on mutating routes, so a malformed payload never reaches token checks.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/users", cfg.Users.List)
	api.Get("/users/:userId", handlers.ValidateUserID(), cfg.Users.Get)
	api.Post("/users", handlers.ValidateBody[dto.CreateUserRequest](), cfg.Users.Create)
	api.Put("/users/:userId",
		handlers.ValidateUserID(),
		handlers.ValidateBody[dto.UpdateUserRequest](),
		cfg.AuthMiddleware.Handle,
		cfg.Users.Update,
	)
	api.Delete("/users/:userId",
		handlers.ValidateUserID(),
		cfg.AuthMiddleware.Handle,
		cfg.Users.Delete,
	)
}
