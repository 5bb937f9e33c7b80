package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smart-rentals/service-rental/internal/application"
	"github.com/smart-rentals/service-rental/internal/config"
	"github.com/smart-rentals/service-rental/internal/events"
	"github.com/smart-rentals/service-rental/internal/handler"
	"github.com/smart-rentals/service-rental/internal/logger"
	"github.com/smart-rentals/service-rental/internal/middleware"
	"github.com/smart-rentals/service-rental/internal/repository"
	"github.com/smart-rentals/service-rental/internal/sweep"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-rental")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rental",
		zap.String("port", cfg.Port),
		zap.Duration("sweep_interval", cfg.SweepInterval),
	)

	// Connect to the document store
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := repository.Connect(ctx, cfg.MongoURI, cfg.MongoDB, log)
	if err != nil {
		log.Fatal("failed to connect to store", zap.Error(err))
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error("store disconnect failed", zap.Error(err))
		}
	}()

	// Initialize repositories
	vehicleRepo := repository.NewMongoVehicleRepository(db)
	bookingRepo := repository.NewMongoBookingRepository(db)
	userRepo := repository.NewMongoUserRepository(db)
	reconciliationRepo := repository.NewMongoReconciliationRepository(db)

	// Initialize event producer (nil when no brokers are configured)
	producer := events.NewProducer(cfg.KafkaBrokers, log)
	defer func() { _ = producer.Close() }()

	// Initialize application services
	bookingService := application.NewBookingService(bookingRepo, vehicleRepo, reconciliationRepo, producer, log)
	vehicleService := application.NewVehicleService(vehicleRepo, log)
	userService := application.NewUserService(userRepo, log)

	// Start the expiry sweeper in its own goroutine
	sweeper := sweep.New(bookingRepo, vehicleRepo, reconciliationRepo, producer, log, cfg.SweepInterval)
	go sweeper.Run(ctx)

	// Setup Gin router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware())

	// Register routes
	handler.NewHealthHandler(client).RegisterRoutes(&router.RouterGroup)
	handler.NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup)
	handler.NewVehicleHandler(vehicleService).RegisterRoutes(&router.RouterGroup)
	handler.NewUserHandler(userService).RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rental...")

	// Stop the sweeper
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rental stopped")
}
