package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RaymondMik/GetRideApp/internal/config"
	"github.com/RaymondMik/GetRideApp/internal/events"
	"github.com/RaymondMik/GetRideApp/internal/handler"
	"github.com/RaymondMik/GetRideApp/internal/logger"
	"github.com/RaymondMik/GetRideApp/internal/repository"
	"github.com/RaymondMik/GetRideApp/internal/service"
	"github.com/RaymondMik/GetRideApp/internal/utils"
	"github.com/RaymondMik/GetRideApp/internal/validation"

	"github.com/gin-gonic/gin"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		slog.Error("failed to init logger", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(log)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// --- Storage ---
	var (
		users        repository.UserRepository
		rideRequests repository.RideRequestRepository
		db           handler.Pinger
	)
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		store := repository.NewMemoryStore()
		users, rideRequests = store.Users(), store.RideRequests()
	default:
		connectCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		dbPool, err := config.ConnectDB(connectCtx, cfg.DB, log)
		cancel()
		if err != nil {
			log.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := config.RunMigrations(cfg.DB, log); err != nil {
			log.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		users, rideRequests = repository.NewUserRepository(dbPool), repository.NewRideRequestRepository(dbPool)
		db = dbPool
	}

	// --- Initialize Utilities ---
	hasher, err := utils.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		log.Error("failed to init password hasher", slog.Any("error", err))
		os.Exit(1)
	}
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)
	validator := validation.New()

	publisher := events.New(cfg.KafkaBrokers)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("failed to close event publisher", slog.Any("error", err))
		}
	}()

	// --- Initialize Services ---
	credentialService := service.NewCredentialService(users, hasher, validator)
	authService := service.NewAuthService(credentialService, jwtUtil)
	rideRequestService := service.NewRideRequestService(rideRequests, validator, publisher, log)

	router := handler.NewRouter(handler.Services{
		Auth:         authService,
		RideRequests: rideRequestService,
		DB:           db,
	}, log)

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", slog.String("port", cfg.ServerPort), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", slog.Any("error", err))
	}

	log.Info("server exiting")
}
