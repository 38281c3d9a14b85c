package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Player       *handlers.PlayerHandler
	Subscription *handlers.SubscriptionHandler
	Invoice      *handlers.InvoiceHandler
	File         *handlers.FileHandler
	Dashboard    *handlers.DashboardHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, m *metrics.Metrics, h Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	authLimit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/login", authLimit, h.Auth.Login)
	api.Post("/refresh", authLimit, h.Auth.Refresh)

	jwt := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired(db)

	api.Post("/logout", jwt, h.Auth.Logout)

	api.Get("/players", jwt, h.Player.List)
	api.Post("/players", jwt, h.Player.Create)
	api.Put("/players/:id", jwt, h.Player.Update)
	api.Delete("/players/:id", jwt, admin, h.Player.Delete)
	api.Get("/players/:id/files", jwt, h.File.ListForPlayer)

	api.Get("/subscriptions", jwt, h.Subscription.List)
	api.Post("/subscriptions", jwt, h.Subscription.Create)
	api.Delete("/subscriptions/:id", jwt, admin, h.Subscription.Delete)
	api.Get("/subscriptions/:id/payments", jwt, h.Subscription.Payments)

	api.Get("/payments/:id/invoice", jwt, h.Invoice.Download)

	api.Post("/files/upload", jwt, h.File.Upload)
	api.Get("/files/:id/download", jwt, h.File.Download)
	api.Delete("/files/:id", jwt, admin, h.File.Delete)

	api.Get("/dashboard/stats", jwt, h.Dashboard.Stats)
	api.Get("/audit-logs", jwt, admin, h.Dashboard.AuditLogs)
}
