// Package main provides the entry point for the wistiamirror API server.
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

	"wistiamirror/config"
	"wistiamirror/internal/adapters/auth"
	"wistiamirror/internal/adapters/wistia"
	httpdelivery "wistiamirror/internal/delivery/http"
	"wistiamirror/internal/delivery/http/controllers"
	"wistiamirror/internal/delivery/http/middleware"
	"wistiamirror/internal/repository/badgercache"
	"wistiamirror/internal/repository/postgres"
	"wistiamirror/internal/services"
)

const (
	serviceTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDB(ctx, cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	cache, err := badgercache.Open(cfg.CachePath)
	if err != nil {
		logger.Error("failed to open playlist cache", "err", err)
		os.Exit(1)
	}
	defer cache.Close()

	videoRepo := postgres.NewVideoRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	wistiaClient := wistia.NewHTTPClient(&http.Client{Timeout: 15 * time.Second}, cfg.WistiaAPIURL, cfg.WistiaAPIToken)

	tokens := auth.NewJWTTokens(cfg.JWTSecret)
	passwords := auth.NewBcryptVerifier()

	videoService := services.NewVideoService(videoRepo, tagRepo, wistiaClient, cache, cfg.CacheTTL, serviceTimeout)
	syncService := services.NewSyncService(videoRepo, tagRepo, wistiaClient, cache, serviceTimeout)
	authService := services.NewAuthService(passwords, tokens, cfg.AdminPasswordHash, cfg.TokenExpiry)

	videoController := controllers.NewVideoController(logger, videoService, syncService)
	authController := controllers.NewAuthController(logger, authService)

	mux := httpdelivery.NewRouter(videoController, authController, tokens)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
