// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Folio HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open storage: PostgreSQL (with migrations) or the in-memory store.
//  4. Connect to Redis when configured, for token revocation.
//  5. Load the token signing keys.
//  6. Wire services and HTTP handlers; create the bootstrap account.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/folio/internal/api"
	"github.com/taibuivan/folio/internal/core/author"
	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/genre"
	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/observability"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/migration"
	pgstore "github.com/taibuivan/folio/internal/platform/postgres"
	redisstore "github.com/taibuivan/folio/internal/platform/redis"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/social/comment"
	"github.com/taibuivan/folio/internal/storage/memory"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

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
		slog.String("storage", cfg.StorageDriver),
	)

	// Root context for startup. A deadline catches misconfiguration quickly
	// rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var healthDeps api.HealthDependencies

	// ── 3. Storage ────────────────────────────────────────────────────────
	var store domain.Store
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("postgres_pool_closing")
			pool.Close()
		}()

		db := pgstore.OpenDB(pool)
		store = domain.Store{
			Authors:  author.NewPostgresRepository(db),
			Books:    book.NewPostgresRepository(db),
			Genres:   genre.NewPostgresRepository(db),
			Comments: comment.NewPostgresRepository(db),
			Users:    account.NewPostgresRepository(db),
		}
		healthDeps.CheckDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }

	case config.StorageMemory:
		log.Warn("memory_storage_enabled", slog.String("note", "data is lost on restart"))
		store = memory.New().Repositories()
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	var revocations auth.RevocationStore = auth.NewMemoryRevocationStore()
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer closeRedis(log, rdb)

		revocations = auth.NewRedisRevocationStore(rdb)
		healthDeps.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	} else {
		log.Warn("token_revocation_in_process", slog.String("note", "logouts are not shared between instances"))
	}

	// ── 5. Tokens ─────────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer, cfg.AccessTokenTTL)
	must(log, err, "initialize jwt service")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	metrics := observability.NewMetrics()
	services := api.NewServices(api.Dependencies{
		Store:       store,
		Hasher:      sec.NewHasher(cfg.PasswordHashCost),
		Tokens:      tokens,
		Revocations: revocations,
		Guard:       access.NewGuard(metrics),
		Logger:      log,
	})

	if cfg.HasRootAccount() {
		created, err := services.Accounts.Bootstrap(startupCtx, cfg.RootUsername, cfg.RootEmail, cfg.RootPassword)
		must(log, err, "bootstrap root account")
		log.Info("root_account_checked", slog.String("username", cfg.RootUsername), slog.Bool("created", created))
	}

	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, services.Auth, metrics, services.Handlers(liveness, readiness))

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("server_shutdown_error", slog.Any("error", err))
		return
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

func closeRedis(log *slog.Logger, client *goredis.Client) {
	log.Info("redis_client_closing")
	if err := client.Close(); err != nil {
		log.Error("redis_close_error", slog.Any("error", err))
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
