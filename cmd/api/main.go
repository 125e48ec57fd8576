// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

// Command api is the entry point for the hadith archive HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
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

	"github.com/sunnahth/hadith-api/internal/api"
	"github.com/sunnahth/hadith-api/internal/auth"
	"github.com/sunnahth/hadith-api/internal/core/book"
	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/core/kitab"
	"github.com/sunnahth/hadith-api/internal/ingest/enrich"
	"github.com/sunnahth/hadith-api/internal/ingest/reconcile"
	"github.com/sunnahth/hadith-api/internal/notify"
	"github.com/sunnahth/hadith-api/internal/oracle"
	"github.com/sunnahth/hadith-api/internal/platform/cache"
	"github.com/sunnahth/hadith-api/internal/platform/config"
	"github.com/sunnahth/hadith-api/internal/platform/constants"
	"github.com/sunnahth/hadith-api/internal/platform/migration"
	pgstore "github.com/sunnahth/hadith-api/internal/platform/postgres"
	redisstore "github.com/sunnahth/hadith-api/internal/platform/redis"
	"github.com/sunnahth/hadith-api/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "hadith-api"))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "hadith-api"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	cacheStore := cache.New(rdb, log)
	notifier := notify.New(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.LineChannelToken, cfg.LineUserID, log)

	hadithRepository := hadith.NewRepository(pool)
	kitabRepository := kitab.NewRepository(pool)
	bookRepository := book.NewRepository(pool)

	// The oracle is optional; without credentials the translate endpoint
	// reports unavailable and everything else works.
	var translator hadith.Translator
	if cfg.OracleConfigured() {
		gemini := oracle.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
		translator = enrich.New(hadithRepository, gemini, notifier, log)
	} else {
		log.Warn("oracle_not_configured")
	}

	reconciler := reconcile.New(hadithRepository, kitabRepository, cacheStore, log)

	authService := auth.NewService(cfg.AdminPasswordHash, jwtSvc, log)
	hadithService := hadith.NewService(hadithRepository, translator, log)
	kitabService := kitab.NewService(kitabRepository, hadithRepository, cacheStore, log)
	bookService := book.NewService(bookRepository, cacheStore, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Hadith:    hadith.NewHandler(hadithService),
		Kitab:     kitab.NewHandler(kitabService, reconciler),
		Book:      book.NewHandler(bookService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
