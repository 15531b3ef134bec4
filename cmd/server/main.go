package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matmarket/matmarket-backend/config"
	"github.com/matmarket/matmarket-backend/internal/app/controller"
	"github.com/matmarket/matmarket-backend/internal/app/repository"
	"github.com/matmarket/matmarket-backend/internal/app/service"
	"github.com/matmarket/matmarket-backend/internal/catalog"
	"github.com/matmarket/matmarket-backend/internal/db"
	"github.com/matmarket/matmarket-backend/internal/middleware"
	"github.com/matmarket/matmarket-backend/internal/router"
	"github.com/matmarket/matmarket-backend/internal/scheduler"
	"github.com/matmarket/matmarket-backend/internal/storage"
	"github.com/matmarket/matmarket-backend/internal/websocket"
	"github.com/matmarket/matmarket-backend/pkg/kvstore"
	"github.com/matmarket/matmarket-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting MatMarket Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed demo data (no-op when tables already hold rows)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Client state store: Redis when configured, in-process otherwise.
	var stateStore kvstore.Store
	if cfg.Redis.Enabled {
		redisStore, err := kvstore.NewRedisStore(kvstore.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal("Failed to connect to Redis", err)
		}
		defer redisStore.Close()
		stateStore = redisStore
	} else {
		logger.Warn("Redis disabled, carts and favorites will not survive restarts")
		stateStore = kvstore.NewMemoryStore()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	adminCodeRepo := repository.NewAdminCodeRepository(db.GetDB())
	catalogRepo := repository.NewCatalogRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		adminCodeRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	catalogService, err := service.NewCatalogService(catalogRepo)
	if err != nil {
		logger.Fatal("Failed to load catalog", err)
	}
	cartService := service.NewCartService(catalogService, orderRepo, stateStore)
	favoritesService := service.NewFavoritesService(catalogService, stateStore)

	// Live catalog feed: every snapshot change is pushed to clients.
	feedHub := websocket.NewHub()
	go feedHub.Run()
	catalogService.View().Subscribe(func(snap catalog.Snapshot) {
		feedHub.Broadcast(websocket.Event{
			Type: "catalog_updated",
			Payload: map[string]interface{}{
				"visible_products": len(snap.Products),
				"sort_by":          string(snap.SortBy),
			},
			Timestamp: time.Now().Unix(),
		})
	})

	// Periodic catalog refresh
	catalogScheduler := scheduler.NewCatalogScheduler(catalogService, cfg.Catalog.RefreshSchedule)
	if err := catalogScheduler.Start(); err != nil {
		logger.Fatal("Failed to start catalog scheduler", err)
	}
	defer catalogScheduler.Stop()

	// Uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(cartService)
	favoritesController := controller.NewFavoritesController(favoritesService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		catalogController,
		cartController,
		favoritesController,
		uploadController,
		feedHub,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
