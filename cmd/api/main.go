package main

import (
	"context"
	"go-cookmate-backend/config"
	v1 "go-cookmate-backend/internal/delivery/http/v1"
	"go-cookmate-backend/internal/repository/mongodb"
	"go-cookmate-backend/internal/usecase"
	"go-cookmate-backend/pkg/auth"
	"go-cookmate-backend/pkg/database"
	"go-cookmate-backend/pkg/logger"
	"go-cookmate-backend/pkg/media"
	"go-cookmate-backend/pkg/redis"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting cookmate backend", "port", cfg.Port)

	// 3. Setup Database
	mongoClient, err := database.NewMongoConnection(cfg.MongoURI)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	db := mongoClient.Database(cfg.MongoDB)
	defer mongoClient.Disconnect(context.Background())

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		logger.Log.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable", "error", err)
	}
	defer redis.Close()

	// 5. Setup Media Store
	mediaStore, err := media.NewS3Store(context.Background(), media.Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
	})
	if err != nil {
		logger.Log.Error("Failed to set up media store", "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	planRepo := mongodb.NewLearningPlanRepository(db)
	progressRepo := mongodb.NewProgressUpdateRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	// 7. Setup UseCases
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Hour)
	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	userUC := usecase.NewUserUsecase(userRepo, postRepo, mediaStore)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)
	postUC := usecase.NewPostUsecase(postRepo, notificationUC, mediaStore)
	planUC := usecase.NewLearningPlanUsecase(planRepo, progressRepo)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		PostUC:         postUC,
		PlanUC:         planUC,
		NotificationUC: notificationUC,
		MediaStore:     mediaStore,
		Tokens:         tokens,
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
