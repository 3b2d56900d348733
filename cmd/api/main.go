// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the photodir HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (optional snapshot cache).
//  4. Build the photographer source.
//  5. Wire domain services and handlers.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/photodir/internal/api"
	"github.com/taibuivan/photodir/internal/browse"
	"github.com/taibuivan/photodir/internal/inquiry"
	"github.com/taibuivan/photodir/internal/photographer"
	"github.com/taibuivan/photodir/internal/platform/config"
	"github.com/taibuivan/photodir/internal/platform/constants"
	redisstore "github.com/taibuivan/photodir/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[photodir] service_initializing", slog.String("version", constants.AppVersion))

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
		slog.String("source_url", cfg.SourceURL),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	// Optional. Without it every fetch goes straight to the upstream.
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	} else {
		log.Info("redis_disabled", slog.String("reason", "REDIS_URL not set"))
	}

	// ── 4. Photographer Source ────────────────────────────────────────────
	httpSource := photographer.NewHTTPSource(cfg.SourceURL, cfg.SourceTimeout, log)
	var source photographer.Source = httpSource

	healthDeps := api.HealthDependencies{
		CheckUpstream: httpSource.Ping,
	}

	if rdb != nil {
		source = photographer.NewCachedSource(httpSource, rdb, cfg.SourceURL, cfg.SourceCacheTTL, log)
		healthDeps.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	photographerService := photographer.NewService(source, log)

	manager := browse.NewManager(browse.ManagerConfig{
		Source: source,
		Options: browse.Options{
			InitialVisible: cfg.InitialVisible,
			LoadMoreDelay:  cfg.LoadMoreDelay,
			Scheduler:      browse.RealScheduler{},
			Submitter:      inquiry.NewLogSubmitter(log),
		},
		IdleTTL: cfg.SessionTTL,
		Logger:  log,
	})
	defer manager.Close()

	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Photographer: photographer.NewHandler(photographerService),
		Browse:       browse.NewHandler(manager),
	})

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
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
