package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rl1809/gallery-pos/internal/adapter/backend"
	"github.com/rl1809/gallery-pos/internal/adapter/handler"
	"github.com/rl1809/gallery-pos/internal/adapter/storage"
	"github.com/rl1809/gallery-pos/internal/config"
	"github.com/rl1809/gallery-pos/internal/core/service"
	"github.com/rl1809/gallery-pos/internal/port"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	session := &backend.Session{}
	client := backend.NewClient(cfg.BackendURL, session, logger)

	if cfg.Username != "" {
		if err := client.Login(ctx, cfg.Username, cfg.Password); err != nil {
			logger.Fatal().Err(err).Msg("backend login failed")
		}
	} else {
		logger.Warn().Msg("no credentials configured, backend calls will be unauthenticated")
	}

	var idem port.IdempotencyStore
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect redis")
		}
		idem = storage.NewRedisAdapter(rdb)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")
	} else {
		idem = storage.NewMemoryAdapter()
		logger.Warn().Msg("no redis configured, submission keys are in-memory only")
	}

	checkout := service.NewCheckoutService(client, idem, logger)

	if _, err := checkout.RefreshCatalog(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial catalog load failed, refresh manually once the backend is reachable")
	}

	httpHandler := handler.NewHTTPHandler(checkout, logger)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpHandler.Router(),
	}

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("terminal facade listening")
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info().Msg("HTTP server stopped")

	if rdb != nil {
		rdb.Close()
	}
	logger.Info().Msg("connections closed")
}
