package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/multi-auth-api/internal/api/http/handlers"
	"github.com/spec-kit/multi-auth-api/internal/auth"
	"github.com/spec-kit/multi-auth-api/internal/config"
	"github.com/spec-kit/multi-auth-api/internal/observability"
	"github.com/spec-kit/multi-auth-api/internal/service"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Login    *handlers.LoginHandler
	Examples *handlers.ExamplesHandler
	Guards   *auth.Guards
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)

	app.Post("/login/token", cfg.Login.Token)

	examples := app.Group("/examples")
	examples.Get("/public/unprotected", cfg.Examples.Public)

	protected := examples.Group("/protected")
	protected.Get("/jwt-only", cfg.Guards.RequireJWT, cfg.Examples.JWTOnly)
	protected.Get("/simple-token-only", cfg.Guards.RequireStaticToken, cfg.Examples.SimpleTokenOnly)

	app.Use(observability.MarkUnmatched())
}

// Dependencies are the collaborators NewApp wires into a fiber application.
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Auth    *service.AuthService
	Guards  *auth.Guards
}

// NewApp builds the fiber application with middlewares and routes registered.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               deps.Config.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
		ReadTimeout:           deps.Config.App.RequestTimeout(),
		WriteTimeout:          deps.Config.App.RequestTimeout(),
	})
	RegisterMiddlewares(app, deps.Config, deps.Logger, deps.Metrics)
	RegisterRoutes(app, RouteConfig{
		Health:   handlers.NewHealthHandler(deps.Config.App.Name, deps.Config.App.Version),
		Login:    handlers.NewLoginHandler(deps.Auth),
		Examples: handlers.NewExamplesHandler(),
		Guards:   deps.Guards,
	})
	return app
}
