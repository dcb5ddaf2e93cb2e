// Package main is the entry point for the wallet API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet-api/config"
	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/infra/db"
	"github.com/finance-tracker/wallet-api/internal/infra/dependency"
	"github.com/finance-tracker/wallet-api/internal/integration/cache"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting wallet API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	var gormDB *gorm.DB
	dbHealthChecker := func() bool { return false }

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
	} else {
		if err := database.Migrate(); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		gormDB = database.DB()
		dbHealthChecker = database.HealthCheck
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Initialize the statistics cache
	statsCache, redisClient := newStatsCache(cfg)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close redis client", "error", err)
			}
		}()
	}

	injector := dependency.NewInjector(cfg, gormDB, dbHealthChecker, statsCache)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Periodically drop expired rate limit entries
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	go runRateLimitCleanup(cleanupCtx, injector, cfg.RateLimit.Window)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// newStatsCache connects to Redis when caching is enabled. Any failure falls back
// to the no-op cache so statistics are always recomputed.
func newStatsCache(cfg *config.Config) (adapter.StatsCache, *redis.Client) {
	if !cfg.Cache.Enabled {
		slog.Info("Installment stats cache disabled")
		return cache.NewNoopStatsCache(), nil
	}

	client, err := cache.NewRedisClient(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("Invalid redis configuration, cache disabled", "error", err)
		return cache.NewNoopStatsCache(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, cache disabled", "error", err)
		_ = client.Close()
		return cache.NewNoopStatsCache(), nil
	}

	slog.Info("Installment stats cache connected", "ttl", cfg.Cache.StatsTTL.String())
	return cache.NewRedisStatsCache(client, cfg.Cache.StatsTTL), client
}

func runRateLimitCleanup(ctx context.Context, injector *dependency.Injector, window time.Duration) {
	if window <= 0 {
		window = time.Minute
	}
	ticker := time.NewTicker(window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			injector.RateLimiter.Cleanup()
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
