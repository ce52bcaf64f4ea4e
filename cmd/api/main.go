// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

// Command api is the entry point for the document template HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Open the embedded blob store.
//  7. Wire domain services and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/document-template-engine/backend/internal/api"
	"github.com/document-template-engine/backend/internal/convert"
	"github.com/document-template-engine/backend/internal/dictionary"
	"github.com/document-template-engine/backend/internal/documents"
	"github.com/document-template-engine/backend/internal/platform/blob"
	"github.com/document-template-engine/backend/internal/platform/config"
	"github.com/document-template-engine/backend/internal/platform/constants"
	"github.com/document-template-engine/backend/internal/platform/mailer"
	"github.com/document-template-engine/backend/internal/platform/metrics"
	"github.com/document-template-engine/backend/internal/platform/migration"
	pgstore "github.com/document-template-engine/backend/internal/platform/postgres"
	redisstore "github.com/document-template-engine/backend/internal/platform/redis"
	"github.com/document-template-engine/backend/internal/platform/sec"
	"github.com/document-template-engine/backend/internal/render"
	"github.com/document-template-engine/backend/internal/templates"
	"github.com/document-template-engine/backend/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
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

	// ── 6. Blob Store ─────────────────────────────────────────────────────
	blobStore, err := blob.Open(cfg.BlobPath)
	must(log, err, "open blob store")
	defer func() {
		log.Info("closing blob store")
		if cerr := blobStore.Close(); cerr != nil {
			log.Error("blob store close error", slog.Any("error", cerr))
		}
	}()

	// ── 7. Platform Services ──────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	metricsRegistry := metrics.New()
	analyzer := render.NewRuleAnalyzer()
	converter := convert.NewLibreOffice(cfg.SofficePath, metricsRegistry, log)

	var notifier documents.Mailer = noopMailer{log: log}
	if cfg.MailEnabled() {
		notifier = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, log)
	}

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckBlobStore: func() error {
			_, _, err := blobStore.Stats(context.Background())
			return err
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewPostgresUserRepository(pool)
	sessionRepository := auth.NewRedisSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	dictionaryService := dictionary.NewService(
		dictionary.NewPostgresFieldTypeRepository(pool),
		dictionary.NewPostgresCategoryRepository(pool),
	)
	dictionaryHandler := dictionary.NewHandler(dictionaryService)

	templateService := templates.NewService(
		templates.NewPostgresRepository(pool),
		dictionaryService,
		blobStore,
		analyzer,
		converter,
		metricsRegistry,
		log,
	)
	templateHandler := templates.NewHandler(templateService)

	documentService := documents.NewService(
		documents.NewPostgresRepository(pool),
		templateService,
		dictionaryService,
		userRepository,
		notifier,
		analyzer,
		converter,
		metricsRegistry,
		log,
	)
	documentHandler := documents.NewHandler(documentService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Metrics:    metricsRegistry.Handler(),
		Auth:       authHandler,
		Templates:  templateHandler,
		Documents:  documentHandler,
		Dictionary: dictionaryHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, metricsRegistry, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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

// noopMailer drops notifications when SMTP is not configured.
type noopMailer struct {
	log *slog.Logger
}

func (m noopMailer) Send(_ context.Context, to, subject, _ string) error {
	m.log.Info("mail delivery skipped (smtp not configured)",
		slog.String("to", to), slog.String("subject", subject))
	return nil
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
