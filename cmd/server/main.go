package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/furniture-backend/config"
	"github.com/ikkim/furniture-backend/internal/app/controller"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/internal/app/service"
	"github.com/ikkim/furniture-backend/internal/db"
	"github.com/ikkim/furniture-backend/internal/events"
	"github.com/ikkim/furniture-backend/internal/middleware"
	"github.com/ikkim/furniture-backend/internal/router"
	"github.com/ikkim/furniture-backend/internal/scheduler"
	"github.com/ikkim/furniture-backend/internal/storage"
	ws "github.com/ikkim/furniture-backend/internal/websocket"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"github.com/ikkim/furniture-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Server.Environment == "development",
		Service:     "furniture-backend",
	})

	logger.Info("Starting Furniture Backend Server", map[string]interface{}{
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

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Token blacklist (optional). Without Redis, logout only clears the
	// refresh token and access tokens live until they expire.
	var blacklist service.TokenBlacklist
	var revoked middleware.RevocationChecker
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, token blacklist disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			tb := redis.NewTokenBlacklist(redis.GetClient())
			blacklist = tb
			revoked = tb
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Domain events
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.ClientID)
		logger.Info("Kafka publisher enabled", map[string]interface{}{
			"brokers": cfg.Kafka.Brokers,
		})
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", err)
		}
	}()

	// File storage (optional)
	var fileStorage service.FileStorage
	if cfg.S3.Bucket != "" {
		fileStorage = storage.NewS3Storage(
			context.Background(),
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	}

	// Notification hub
	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()

	conn := db.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(conn)
	categoryRepo := repository.NewCategoryRepository(conn)
	productRepo := repository.NewProductRepository(conn)
	optionRepo := repository.NewOptionRepository(conn)
	commentRepo := repository.NewCommentRepository(conn)
	boardRepo := repository.NewBoardRepository(conn)
	cartRepo := repository.NewCartRepository(conn)
	orderRepo := repository.NewOrderRepository(conn)
	checkRepo := repository.NewOrderCheckRepository(conn)

	// Initialize services
	authService := service.NewAuthService(userRepo, blacklist, service.AuthOptions{
		Secret:        cfg.JWT.Secret,
		AccessExpiry:  cfg.JWT.AccessTokenExpiry,
		RefreshExpiry: cfg.JWT.RefreshTokenExpiry,
		RotateWindow:  cfg.JWT.RefreshRotateWindow,
	})
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	optionService := service.NewOptionService(optionRepo, productRepo)
	stockService := service.NewStockService(conn, optionRepo, checkRepo)
	commentService := service.NewCommentService(commentRepo, productRepo)
	boardService := service.NewBoardService(boardRepo)
	fileService := service.NewFileService(fileStorage, productRepo, commentRepo)
	cartService := service.NewCartService(cartRepo, optionRepo)
	orderService := service.NewOrderService(conn, orderRepo, cartRepo, optionRepo, checkRepo, publisher, hub)

	// Initialize controllers
	authController := controller.NewAuthController(authService, controller.CookieOptions{
		MaxAge: cfg.JWT.CookieMaxAge,
		Secure: cfg.Server.Environment == "production",
	})
	productController := controller.NewProductController(categoryService, productService, optionService, stockService)
	commentController := controller.NewCommentController(commentService)
	boardController := controller.NewBoardController(boardService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService, stockService)
	uploadController := controller.NewUploadController(fileService)
	notificationController := controller.NewNotificationController(hub, cfg.CORS.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, revoked)

	r := router.NewRouter(
		authController,
		productController,
		commentController,
		boardController,
		cartController,
		orderController,
		uploadController,
		notificationController,
		authMiddleware,
		cfg,
	)

	lowStock := scheduler.NewLowStockScheduler(
		cfg.Scheduler.LowStockCron,
		cfg.Scheduler.LowStockThreshold,
		stockService,
		publisher,
	)
	if err := lowStock.Start(); err != nil {
		logger.Warn("Low stock scheduler not started", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer lowStock.Stop()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
