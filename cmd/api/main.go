package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-board-backend/config"
	_ "job-board-backend/docs" // Important for Swagger
	"job-board-backend/internal/delivery/http/middleware"
	v1 "job-board-backend/internal/delivery/http/v1"
	"job-board-backend/internal/domain"
	"job-board-backend/internal/repository/mongodb"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/auth"
	"job-board-backend/pkg/database"
	"job-board-backend/pkg/email"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/redis"
	"job-board-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

// @title           Job Board API
// @version         1.0
// @description     Jobs, users and recruiters with cookie or bearer token authentication.
// @host            localhost:5001
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Env)
	defer logger.Sync()
	logger.Log.Info("Starting job board backend", zap.String("port", cfg.Port))

	// 3. Setup Database
	ctx := context.Background()
	mongoClient, err := database.NewMongoConnection(ctx, cfg.MongoURI)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	// 4. Setup Repositories
	userRepo := mongodb.NewUserRepository(ctx, logger.Log, db)
	recruiterRepo := mongodb.NewRecruiterRepository(ctx, logger.Log, db)
	jobRepo := mongodb.NewJobRepository(ctx, logger.Log, db)

	// 5. Setup Redis (optional)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limits fall back to memory", zap.Error(err))
	}

	// 6. Setup Security
	securityLogger := security.NewSecurityLogger(logger.Log)
	trackerFor := func(prefix string) *security.LoginTracker {
		return security.NewLoginTracker(security.LoginTrackerConfig{
			MaxAttempts:   cfg.FailedLoginMaxAttempts,
			AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
			BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
			KeyPrefix:     prefix,
		}, securityLogger)
	}

	// 7. Setup Email Service
	emailService := email.NewEmailService(logger.Log)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not configured - reset tokens are only returned in the response")
	}

	// 8. Setup Token Service
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpire)

	// 9. Setup UseCases
	userUC := usecase.NewUserUsecase(userRepo, tokens)
	recruiterUC := usecase.NewRecruiterUsecase(recruiterRepo, tokens)
	jobUC := usecase.NewJobUsecase(jobRepo)
	userAuthUC := usecase.NewAuthUsecase(
		usecase.AuthConfig{Kind: domain.KindUser, ResetTTL: cfg.ResetTokenExpire},
		userRepo, tokens, trackerFor("user"), emailService, logger.Log,
	)
	recruiterAuthUC := usecase.NewAuthUsecase(
		usecase.AuthConfig{Kind: domain.KindRecruiter, ResetTTL: cfg.ResetTokenExpire},
		recruiterRepo, tokens, trackerFor("recruiter"), emailService, logger.Log,
	)
	healthUC := usecase.NewHealthUsecase(
		map[string]domain.HealthCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
		},
		map[string]domain.HealthCheck{"redis": redis.HealthCheck},
	)

	// 10. Bootstrap admin
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := userUC.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Log.Error("Failed to bootstrap admin", zap.Error(err))
		}
	}

	// 11. Setup Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:          userUC,
		RecruiterUC:     recruiterUC,
		JobUC:           jobUC,
		UserAuthUC:      userAuthUC,
		RecruiterAuthUC: recruiterAuthUC,
		Tokens:          tokens,
		Cookie: v1.CookieConfig{
			ExpireDays: cfg.JWTCookieExpire,
			Secure:     cfg.IsProduction(),
		},
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Production:     cfg.IsProduction(),
		LoginLimit: middleware.RateLimitMiddleware(
			middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window, securityLogger),
		),
		PasswordLimit: middleware.RateLimitMiddleware(
			middleware.PasswordRateLimitConfig(cfg.RateLimitLoginThreshold, window, securityLogger),
		),
		HealthUC: healthUC,
		Logger:   logger.Log,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Log.Error("Mongo disconnect failed", zap.Error(err))
	}
	if err := redis.Close(); err != nil {
		logger.Log.Warn("Redis close failed", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
