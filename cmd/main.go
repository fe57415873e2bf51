package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"video-recommendation-service/internal/config"
	"video-recommendation-service/internal/database"
	"video-recommendation-service/internal/engine"
	"video-recommendation-service/internal/handler"
	"video-recommendation-service/internal/provider"
	"video-recommendation-service/internal/repository"
	"video-recommendation-service/internal/service"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	}

	// Upstream content provider (nil if not configured)
	prov := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.Token)
	if prov == nil {
		slog.Warn("no content provider configured, sync endpoint disabled")
	}

	// Engine tuning from the environment
	engineCfg := engine.DefaultConfig()
	engineCfg.HalfLife = cfg.Engine.HalfLife
	engineCfg.RecencyWindow = cfg.Engine.RecencyWindow
	engineCfg.MaxAbsWeight = cfg.Engine.MaxAbsWeight

	// Initialize layers
	videoRepo := repository.NewVideoRepository(db)
	userRepo := repository.NewUserRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)

	catalogSvc := service.NewCatalogService(videoRepo, prov, rdb)
	userSvc := service.NewUserService(userRepo)
	interactionSvc := service.NewInteractionService(interactionRepo, userRepo, videoRepo, engineCfg, rdb)
	recSvc := service.NewRecommendationService(userRepo, videoRepo, interactionRepo, engineCfg, rdb)

	videoH := handler.NewVideoHandler(catalogSvc)
	userH := handler.NewUserHandler(userSvc, interactionSvc)
	interactionH := handler.NewInteractionHandler(interactionSvc)
	recH := handler.NewRecommendationHandler(recSvc)
	healthH := handler.NewHealthHandler(videoRepo, userRepo, interactionRepo)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Video Recommendation Service",
		ServerHeader: "Video-Recommendation-Service",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// Routes
	app.Get("/health", healthH.Health)

	app.Post("/videos", videoH.CreateVideo)
	app.Get("/videos", videoH.ListVideos)
	app.Get("/videos/:id", videoH.GetVideo)
	app.Patch("/videos/:id", videoH.UpdateVideo)
	app.Delete("/videos/:id", videoH.DeleteVideo)

	app.Post("/users", userH.CreateUser)
	app.Get("/users/:id", userH.GetUser)
	app.Patch("/users/:id", userH.UpdateUser)
	app.Get("/users/:id/interactions", userH.GetInteractions)

	app.Post("/interactions", interactionH.CreateInteraction)

	app.Get("/recommendations/:user_id", recH.GetRecommendations)

	app.Get("/catalog/meta", videoH.CatalogMeta)
	app.Post("/admin/seed", videoH.Seed)
	app.Post("/admin/sync", videoH.Sync)

	// Background affinity refresher
	refreshCtx, stopRefresher := context.WithCancel(context.Background())
	refresher := service.NewAffinityRefresher(recSvc, cfg.Engine.RefreshInterval)
	go refresher.Run(refreshCtx)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down...")
		stopRefresher()
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting video recommendation service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
