package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusfolio/ascent-api/internal/config"
	"github.com/campusfolio/ascent-api/internal/handler"
	"github.com/campusfolio/ascent-api/internal/middleware"
	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler           *handler.AuthHandler
	ActivityHandler       *handler.ActivityHandler
	AchievementHandler    *handler.AchievementHandler
	PortfolioHandler      *handler.PortfolioHandler
	NotificationHandler   *handler.NotificationHandler
	AdminAnalyticsHandler *handler.AdminAnalyticsHandler
	SeedHandler           *handler.SeedHandler
	JWTMiddleware         fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(api.Group("/activities", jwtMiddleware))
	}

	if deps.AchievementHandler != nil {
		deps.AchievementHandler.Register(api.Group("/achievements", jwtMiddleware))
	}

	if deps.PortfolioHandler != nil {
		deps.PortfolioHandler.Register(api.Group("/portfolios", jwtMiddleware))
	}

	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications", jwtMiddleware))
	}

	if deps.AdminAnalyticsHandler != nil {
		admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
		deps.AdminAnalyticsHandler.Register(admin)
	}

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/admin"))
	}
}
