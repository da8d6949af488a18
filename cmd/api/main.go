package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"doc-catalog/internal/config"
	"doc-catalog/internal/db"
	apihttp "doc-catalog/internal/http"
	"doc-catalog/internal/repository"
	"doc-catalog/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	authorRepo := repository.NewPgAuthorRepository(pool)
	documentRepo := repository.NewPgDocumentRepository(pool)

	tokenSvc := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authSvc := service.NewAuthService(
		logger,
		userRepo,
		tokenSvc,
		cfg.AdminEmails,
		cfg.AdminFallbackPassword,
		cfg.UserFallbackPassword,
	)
	authorSvc := service.NewAuthorService(logger, authorRepo)
	documentSvc := service.NewDocumentService(logger, documentRepo, authorSvc)

	loginLimiter := service.NewLoginRateLimiter(10*time.Minute, 10)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 10)
		}
		cancel()
	}

	authHandler := apihttp.NewAuthHandler(logger, authSvc, loginLimiter)
	authorHandler := apihttp.NewAuthorHandler(logger, authorSvc)
	documentHandler := apihttp.NewDocumentHandler(logger, documentSvc)
	logHandler := apihttp.NewLogHandler(logger)
	router := apihttp.NewRouter(logger, tokenSvc, authHandler, authorHandler, documentHandler, logHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
