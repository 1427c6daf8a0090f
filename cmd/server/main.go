package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-task-api/internal/auth"
	"team-task-api/internal/config"
	"team-task-api/internal/database"
	"team-task-api/internal/logger"
	"team-task-api/internal/routes"
	"team-task-api/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		_ = logger.Init(false)
		logger.Fatal("Failed to load config", err)
	}

	if err := logger.Init(cfg.LogDevelopment); err != nil {
		logger.Fatal("Failed to init logger", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)
	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET is not set, using the development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to open database", err)
	}

	router := routes.SetupRoutes(routes.Dependencies{
		Store:  store,
		Tokens: auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL),
		TaskOptions: []services.Option{
			services.WithLocation(cfg.Location),
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("backend", string(database.DetectBackend(cfg.DatabaseURL))),
			zap.String("timezone", cfg.Location.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close database", err)
	}
	logger.Info("Server stopped")
}
