package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fittrack/fitness-api/internal/api"
	"fittrack/fitness-api/internal/authz"
	"fittrack/fitness-api/internal/config"
	"fittrack/fitness-api/internal/logger"
	"fittrack/fitness-api/internal/repository/postgres"
	"fittrack/fitness-api/internal/service"
	"fittrack/fitness-api/internal/storage"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	// --- Logger ---
	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	zapLogger.Info("starting fittrack server")

	// --- Database Connection ---
	db, err := postgres.InitPostgres(cfg.Database.DSN)
	if err != nil {
		zapLogger.Fatal("could not connect to postgres", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Error("failed to close database", zap.Error(err))
		}
	}()
	zapLogger.Info("database connection established")

	// --- File Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize s3 storage", zap.Error(err))
	}

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	workoutRepo := postgres.NewWorkoutRepository(db)
	weightRepo := postgres.NewWeightRepository(db)
	calorieRepo := postgres.NewCalorieRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	resetRepo := postgres.NewDataResetRepository(db)

	// --- Authorization Engine ---
	engine := authz.NewEngine(assignmentRepo)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	accountService := service.NewAccountService(engine, userRepo, assignmentRepo)
	trainerService := service.NewTrainerService(engine, assignmentRepo, planRepo, weightRepo)
	clientService := service.NewClientService(engine, profileRepo, workoutRepo, weightRepo, calorieRepo, planRepo, resetRepo, fileStorage, zapLogger)
	mediaService := service.NewMediaService(engine, photoRepo, fileStorage, zapLogger)

	// --- Router ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(router, cfg.JWT.Secret, authService, clientService, trainerService, accountService, mediaService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zapLogger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exiting")
}
