// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Voyara guide discovery API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the guide source (embedded fixtures, a fixture file, or PostgreSQL).
//  4. Connect to Redis for search history, or fall back to process memory.
//  5. Load the JWT public key, or reject all bearer tokens.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/voyara/internal/api"
	"github.com/taibuivan/voyara/internal/core/guide"
	"github.com/taibuivan/voyara/internal/platform/config"
	"github.com/taibuivan/voyara/internal/platform/constants"
	"github.com/taibuivan/voyara/internal/platform/middleware"
	"github.com/taibuivan/voyara/internal/platform/migration"
	pgstore "github.com/taibuivan/voyara/internal/platform/postgres"
	redisstore "github.com/taibuivan/voyara/internal/platform/redis"
	"github.com/taibuivan/voyara/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Voyara] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("guide_source", cfg.GuideSource),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	checks := make([]api.DependencyCheck, 0, 2)

	// ── 3. Guide Source ───────────────────────────────────────────────────
	var repository guide.Repository

	if cfg.UsesPostgres() {
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		if cfg.AutoMigrate {
			must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
		}

		repository = guide.NewPostgresRepository(pool)
		checks = append(checks, postgresCheck(pool))
	} else {
		repository, err = openFixtures(cfg.FixturePath)
		must(log, err, "load guide fixtures")
	}

	// ── 4. Search History ─────────────────────────────────────────────────
	var histories guide.HistoryRepository = guide.NewMemoryHistoryRepository()

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		histories = guide.NewRedisHistoryRepository(rdb)
		checks = append(checks, redisCheck(rdb))
	} else {
		log.Warn("search_history_in_memory", slog.String("reason", "REDIS_URL not set"))
	}

	// ── 5. Token Verification ─────────────────────────────────────────────
	var verifier middleware.TokenVerifier = sec.RejectAllVerifier{}

	if cfg.JWTPubKeyPath != "" {
		tokenVerifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
		must(log, err, "load jwt public key")
		verifier = tokenVerifier
	} else {
		log.Warn("jwt_verification_disabled", slog.String("reason", "JWT_PUBLIC_KEY_PATH not set"))
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	guideService := guide.NewService(repository, histories, log)
	guideHandler := guide.NewHandler(guideService)

	liveness, readiness := api.NewHealthHandlers(checks, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, verifier, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Guide:     guideHandler,
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger with the global "app" attribute.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", "voyara"))
}

// openFixtures loads the catalogue from path, or the embedded one when path is empty.
func openFixtures(path string) (*guide.FixtureRepository, error) {
	if path == "" {
		return guide.NewFixtureRepository()
	}
	return guide.LoadFixtures(path)
}

func postgresCheck(pool *pgxpool.Pool) api.DependencyCheck {
	return api.DependencyCheck{
		Name:  "postgres",
		Check: func(context context.Context) error { return pgstore.Ping(context, pool) },
	}
}

func redisCheck(client *redis.Client) api.DependencyCheck {
	return api.DependencyCheck{
		Name:  "redis",
		Check: func(context context.Context) error { return redisstore.Ping(context, client) },
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
