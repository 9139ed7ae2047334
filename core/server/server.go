package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courtbook/core/cache"
	"courtbook/core/config"
	"courtbook/core/database"
	"courtbook/core/logger"
	"courtbook/core/middleware"
	"courtbook/core/storage"
	"courtbook/core/tasks"
	"courtbook/modules/booking"
	"courtbook/modules/notification"
	"courtbook/modules/slot"
	"courtbook/modules/subscription"
	subscriptionService "courtbook/modules/subscription/service"
	"courtbook/modules/venue"
	venueRepository "courtbook/modules/venue/repository"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run wires the whole application: config, logging, postgres, redis, the
// asynq worker and every module, then serves until SIGINT/SIGTERM.
func Run() error {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	redisCache, err := cache.NewRedisCache(cache.CacheConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	dispatcher := tasks.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	proofStorage := storage.NewS3Storage(storage.StorageConfig{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})

	mw := middleware.NewMiddleware(cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(20)))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// The venue repository doubles as the quota gate's resource counter,
	// so it is built before the modules that consume it.
	venueRepo := venueRepository.NewVenueRepository(db)

	_, subRepo := subscription.Init(e, db, mw, proofStorage)
	quota := subscriptionService.NewQuotaGate(subRepo, venueRepo)

	venue.Init(e, db, mw, venueRepo, quota)
	slotRepo, slotSvc := slot.Init(e, db, redisCache, mw, venueRepo)
	notifSvc := notification.Init(e, db, mw)
	booking.Init(e, db, mw, slotRepo, slotSvc, venueRepo, quota, dispatcher, proofStorage)

	worker := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB},
		asynq.Config{Concurrency: cfg.AsynqConcurrency},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationDeliver, notifSvc.HandleDeliverTask)

	go func() {
		if err := worker.Run(mux); err != nil {
			logger.Error("Server:AsynqWorker", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	worker.Shutdown()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
