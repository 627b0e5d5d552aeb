package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/astro-web3/restaurant-api/internal/config"
	httptransport "github.com/astro-web3/restaurant-api/internal/transport/http"
	"github.com/astro-web3/restaurant-api/pkg/logger"
	"github.com/astro-web3/restaurant-api/pkg/otel"
)

func main() {
	os.Exit(run(config.MustLoad()))
}

func run(cfg *config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// NewServer initializes the logger; log is only used until then.
	srv, err := httptransport.NewServer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "restaurant api listening",
			slog.String("addr", cfg.Server.Addr),
			slog.String("mode", cfg.Server.Mode),
			slog.String("database", cfg.Database.Driver),
			slog.Bool("redis", cfg.Redis.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.InfoContext(context.Background(), "shutdown signal received")
	case err := <-serveErr:
		logger.ErrorContext(context.Background(), "server failed", slog.String("error", err.Error()))
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "server forced to shutdown", slog.String("error", err.Error()))
		exitCode = 1
	}
	if err := otel.Shutdown(shutdownCtx); err != nil {
		logger.WarnContext(shutdownCtx, "tracer provider shutdown failed", slog.String("error", err.Error()))
	}

	logger.InfoContext(shutdownCtx, "server stopped")
	return exitCode
}
