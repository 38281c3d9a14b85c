package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/invoice"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/jobs"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	level := logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "driver", cfg.Driver(), "error", err)
		os.Exit(1)
	}
	slog.Info("database connected", "driver", cfg.Driver())

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		slog.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout, level),
		dbLogHandler,
	)))

	m := metrics.New()

	uploads, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		slog.Error("upload storage unavailable", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	// Invoicing core
	billing := repository.NewBilling(db)
	issuer := invoice.NewIssuer(billing)
	layout := invoice.DefaultLayout()
	layout.ClubName = cfg.ClubName
	layout.Tagline = cfg.ClubTagline
	layout.Currency = cfg.CurrencySymbol
	renderer := invoice.NewRenderer(billing, layout)

	// Services
	authService := services.NewAuthService(db, cfg)
	playerService := services.NewPlayerService(db)
	subscriptionService := services.NewSubscriptionService(db, billing, issuer, m)
	invoiceService := services.NewInvoiceService(renderer, m)
	fileService := services.NewFileService(db, uploads, m)
	dashboardService := services.NewDashboardService(db)
	auditService := services.NewAuditService(db)

	// Scheduled maintenance
	scheduler, err := jobs.NewScheduler(db, subscriptionService, cfg.LogRetentionDays)
	if err != nil {
		slog.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    16 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, db, m, routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Health:       handlers.NewHealthHandler(db),
		Player:       handlers.NewPlayerHandler(playerService),
		Subscription: handlers.NewSubscriptionHandler(subscriptionService),
		Invoice:      handlers.NewInvoiceHandler(invoiceService),
		File:         handlers.NewFileHandler(fileService),
		Dashboard:    handlers.NewDashboardHandler(dashboardService, auditService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	scheduler.Stop()

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	// Close database connections
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
