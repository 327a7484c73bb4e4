package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/app"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/config"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/database"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/handler"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/middleware"
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/keygen"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Build info (injected at build time via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "config.yaml"
	}
	configPath := flag.String("config", defaultConfig, "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	logger, err := middleware.InitLogger(cfg.Log, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.JWT.Secret == "" {
		secret, err := keygen.Secret(64)
		if err != nil {
			logger.Fatal("failed to generate jwt secret", zap.Error(err))
		}
		cfg.JWT.Secret = secret
		logger.Warn("jwt.secret is not set, using an ephemeral secret; tokens will not survive a restart")
	}

	// Initialize database
	db, err := database.Open(cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}

	// Auto migrate database
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize Redis
	rdb := initRedis(cfg, logger)

	router := app.NewRouter(app.Options{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Logger: logger,
		Build: handler.BuildInfo{
			Version:   Version,
			Commit:    Commit,
			BuildTime: BuildTime,
		},
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("addr", addr), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("error closing redis connection", zap.Error(err))
		}
	}

	if err := database.Close(db); err != nil {
		logger.Error("error closing database", zap.Error(err))
	}

	logger.Info("server exited properly")
}

// initRedis returns nil when redis is not configured
func initRedis(cfg *config.Config, logger *zap.Logger) *redis.Client {
	if !cfg.Redis.Enabled() {
		logger.Info("redis disabled, prediction feed unavailable")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping failed", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
	}

	return rdb
}
