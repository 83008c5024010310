// File: slotbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbook/config"
	"slotbook/database"
	scheduleRepo "slotbook/database/repository/schedule"
	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/routes"
	"slotbook/services/booking"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// Logger is not configured yet.
		zap.NewExample().Sugar().Fatalf("main: failed to load config: %v", err)
	}
	logger := utils.InitializeLogger(*cfg)
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// storage.
	mongoClient, err := database.Connect(rootCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))

	repo := scheduleRepo.NewMongoScheduleRepo(mongoClient.Database(cfg.DatabaseName), cfg.BookingCollection)
	if err := repo.EnsureIndexes(rootCtx); err != nil {
		logger.Warn("main: failed to ensure booking indexes", zap.Error(err))
	}

	// cache.
	slotCache := booking.NewNoopSlotCache()
	redisClient, err := utils.NewCacheClient(*cfg)
	switch {
	case err != nil:
		logger.Warn("main: slot cache disabled", zap.Error(err))
	case redisClient != nil:
		slotCache = booking.NewRedisSlotCache(redisClient, cfg.SlotCacheTTL)
		logger.Info("Connected to Redis slot cache", zap.String("addr", cfg.RedisAddr))
	}

	// services.
	bookingService, err := booking.NewDefaultBookingService(repo, slotCache, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	monitor := utils.NewHealthMonitor(mongoClient, redisClient, cfg.HealthCheckInterval, logger)
	monitor.Start(rootCtx)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(handlers.NewBookingHandler(bookingService), monitor)
	routes.RegisterRoutes(router, handlerBundle, *cfg)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("main: failed to close Redis client", zap.Error(err))
		}
	}
	if err := database.Disconnect(mongoClient); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
