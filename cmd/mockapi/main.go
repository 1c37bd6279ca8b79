package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rl1809/gallery-pos/internal/mockbackend"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	addr := os.Getenv("MOCKAPI_ADDR")
	if addr == "" {
		addr = ":8086"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: mockbackend.NewServer().Handler(),
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("mock gallery backend listening")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	logger.Info().Msg("stopped")
}
