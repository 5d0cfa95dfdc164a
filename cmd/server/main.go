package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lenspick/lenspick-backend/config"
	"github.com/lenspick/lenspick-backend/internal/app/controller"
	"github.com/lenspick/lenspick-backend/internal/app/repository"
	"github.com/lenspick/lenspick-backend/internal/app/service"
	"github.com/lenspick/lenspick-backend/internal/db"
	"github.com/lenspick/lenspick-backend/internal/middleware"
	"github.com/lenspick/lenspick-backend/internal/router"
	"github.com/lenspick/lenspick-backend/internal/scheduler"
	"github.com/lenspick/lenspick-backend/internal/storage"
	"github.com/lenspick/lenspick-backend/internal/websocket"
	"github.com/lenspick/lenspick-backend/pkg/logger"
	"github.com/lenspick/lenspick-backend/pkg/redis"
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

	logger.Info("Starting LENSPICK Backend Server", map[string]interface{}{
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

	// Initialize Redis (토큰 블랙리스트용, 없어도 기동은 함)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
	}

	// Initialize storage
	imageStore := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Start WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	profileRepo := repository.NewProfileRepository(db.GetDB())
	postRepo := repository.NewPostRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		profileRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	profileService := service.NewProfileService(profileRepo, postRepo, categoryRepo)
	postService := service.NewPostService(postRepo, profileRepo, imageStore)
	notificationService := service.NewNotificationService(notificationRepo, hub)
	reviewService := service.NewReviewService(reviewRepo, postRepo, profileRepo, notificationService)
	categoryService := service.NewCategoryService(categoryRepo)
	reportService := service.NewReportService(profileRepo, postRepo, reviewRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	profileController := controller.NewProfileController(profileService, postService, reviewService)
	postController := controller.NewPostController(postService)
	reviewController := controller.NewReviewController(reviewService)
	categoryController := controller.NewCategoryController(categoryService)
	adminController := controller.NewAdminController(postService, profileService, reportService)
	uploadController := controller.NewUploadController(imageStore)
	notificationController := controller.NewNotificationController(notificationService, hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	profileMiddleware := middleware.NewProfileMiddleware(profileService)

	// Start review reminder scheduler
	reminderScheduler := scheduler.NewReminderScheduler(profileRepo, notificationService)
	if err := reminderScheduler.Start(); err != nil {
		logger.Warn("Failed to start reminder scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer reminderScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		profileController,
		postController,
		reviewController,
		categoryController,
		adminController,
		uploadController,
		notificationController,
		authMiddleware,
		profileMiddleware,
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
