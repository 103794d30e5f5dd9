package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/quillblog/quill/internal/adapter/media"
	"github.com/quillblog/quill/internal/adapter/store"
	"github.com/quillblog/quill/internal/auth"
	"github.com/quillblog/quill/internal/handler"
	"github.com/quillblog/quill/internal/middleware"
	"github.com/quillblog/quill/internal/port"
	"github.com/quillblog/quill/internal/service"
	"github.com/quillblog/quill/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("🚀 Starting Quill", "port", cfg.Port, "app", cfg.AppName)

	// ── Database ─────────────────────────────────────────────────────────
	if err := store.ApplyMigrations(cfg.MigrationsDir, cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// ── Auth core ────────────────────────────────────────────────────────
	codec, err := auth.NewTokenCodec(cfg.JWTSecret, time.Duration(cfg.JWTExpiration)*time.Hour)
	if err != nil {
		slog.Error("failed to build token codec", "error", err)
		os.Exit(1)
	}
	authn := auth.NewAuthenticator(codec, db)
	authz := auth.NewAuthorizer(authn, db)
	requireAuth := middleware.RequireAuth(authn)

	// ── Media ────────────────────────────────────────────────────────────
	var uploader port.MediaStore
	if cfg.MediaUploadURL != "" {
		uploader = media.NewUploader(cfg.MediaUploadURL, cfg.MediaUploadPreset)
	}

	// ── Services ─────────────────────────────────────────────────────────
	authService := service.NewAuthService(db, codec, authn)
	postService := service.NewPostService(db, db, uploader, cfg.MediaFolder)
	categoryService := service.NewCategoryService(db, db)
	commentService := service.NewCommentService(db, db)
	likeService := service.NewLikeService(db, db, cfg.AllowSelfLike)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	// Audit middleware (logs all requests)
	app.Use(middleware.Audit(db))

	// Health check
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"app":    cfg.AppName,
		})
	})

	var limit fiber.Handler
	if cfg.RateLimitEnabled {
		limit = middleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst).Handler()
	}

	api := app.Group("/api/v1")

	authHandler := handler.NewAuthHandler(authService, requireAuth, limit, codec.TTL())
	authHandler.Register(api)

	postHandler := handler.NewPostHandler(postService, authz)
	postHandler.Register(api)

	categoryHandler := handler.NewCategoryHandler(categoryService, authz)
	categoryHandler.Register(api)

	commentHandler := handler.NewCommentHandler(commentService, requireAuth)
	commentHandler.Register(api)

	likeHandler := handler.NewLikeHandler(likeService, requireAuth)
	likeHandler.Register(api)

	auditHandler := handler.NewAuditHandler(db, authz)
	auditHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
