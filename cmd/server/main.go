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

	redisv9 "github.com/redis/go-redis/v9"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/app/router"
	"stock_dashboard/internal/config"
	"stock_dashboard/internal/platform/http/handler"
	"stock_dashboard/internal/platform/logging"
	infraredis "stock_dashboard/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Info("config loaded", "config", cfg)

	// Redis
	var (
		rdb  *redisv9.Client
		ping handler.PingFunc
	)
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		logger.Warn("Redis unavailable. Using in-process cache.", "error", err)
	} else {
		rdb = tmp
		ping = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	dashboardH := di.NewDashboardHandler(cfg, rdb)
	r := router.NewRouter(logger, dashboardH, handler.NewHealth(ping))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
