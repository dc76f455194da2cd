// Package main is the entry point for the gorest server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/randytsao24/gorest/internal/api"
	"github.com/randytsao24/gorest/internal/api/handlers"
	"github.com/randytsao24/gorest/internal/config"
	"github.com/randytsao24/gorest/internal/logger"
	"github.com/randytsao24/gorest/internal/nearby"
	"github.com/randytsao24/gorest/internal/overpass"
	"github.com/randytsao24/gorest/internal/trips"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Setup(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat, os.Stdout)

	if err := cfg.Validate(); err != nil {
		log.Error("configuration error", logger.Err(err))
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", logger.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := overpass.NewClient(cfg.OverpassURL, cfg.OverpassTimeout, log)
	nearbySvc := nearby.NewService(client, nearby.Options{
		Categories:       cfg.ServiceCategories,
		RetryUnavailable: cfg.RetryUnavailable,
		Logger:           log,
	})

	store, closeStore, err := openTripStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(cfg, nearbySvc, store),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("🚗 gorest server starting on port %s\n", cfg.Port)
	fmt.Printf("📍 Environment: %s\n", cfg.Env)
	fmt.Printf("🔗 http://localhost:%s\n", cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openTripStore builds the configured trip store and a func releasing it
func openTripStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (handlers.TripStore, func(), error) {
	switch cfg.TripStore {
	case config.TripStoreRedis:
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx).Err(); err != nil {
			_ = rc.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Info("trip store ready", "backend", "redis", "addr", cfg.RedisAddr)
		return trips.NewRedisStore(rc, cfg.RedisKeyPrefix), func() { _ = rc.Close() }, nil
	default:
		store, err := trips.OpenFileStore(cfg.TripsFile, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("trip store ready", "backend", "file", "path", cfg.TripsFile)
		return store, func() {}, nil
	}
}
