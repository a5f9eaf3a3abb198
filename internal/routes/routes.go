package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/apps"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/config"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	tokens *services.TokenIssuer,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	plugins []apps.Plugin,
) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// Public
	api.Get("/health", healthHandler.Check)
	api.Post("/login", limiter.New(limiter.Config{
		Max:               cfg.LoginRateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), authHandler.Login)

	guard := middleware.AuthRequired(tokens)

	api.Get("/me", guard, authHandler.Me)
	api.Post("/users", guard, middleware.AdminRequired(), authHandler.CreateUser)

	for _, p := range plugins {
		p.RegisterRoutes(api, guard, db)
	}
}
