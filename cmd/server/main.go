package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"realty/backend/internal/config"
	"realty/backend/internal/httpserver"
	"realty/backend/internal/infrastructure/postgres"
	"realty/backend/internal/infrastructure/secret"
	"realty/backend/internal/infrastructure/token"
	"realty/backend/internal/logger"
	authusecase "realty/backend/internal/usecase/auth"
	listingusecase "realty/backend/internal/usecase/listing"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.Init(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		zlog.Fatal("failed to run database migrations", zap.Error(err))
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	hasher := secret.NewBcryptHasher()

	authService := authusecase.NewService(postgres.NewUserRepository(db.Pool), tokenManager, hasher, cfg.ProductKeySecret)
	listingService := listingusecase.NewService(postgres.NewListingRepository(db.Pool))

	server := httpserver.NewServer(cfg, authService, listingService)
	zlog.Info("HTTP server listening", zap.String("addr", server.Addr()))

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				zlog.Info("HTTP server closed")
				return
			}
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	} else {
		zlog.Info("graceful shutdown completed")
	}
}
