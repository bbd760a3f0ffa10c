package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/wichananm65/profile-registry/internal/country"
	"github.com/wichananm65/profile-registry/internal/infrastructure/config"
	"github.com/wichananm65/profile-registry/internal/logging"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run keeps cleanup in defers so storage is closed and Sentry flushed on
// every exit path, including a failed listen.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		slog.Error("invalid configuration", "error", err)
		return err
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		slog.Error("storage unavailable", "driver", cfg.StorageDriver, "error", err)
		return err
	}
	defer store.Close()
	slog.Info("storage opened", "driver", cfg.StorageDriver)

	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	catalog := country.NewCatalog(country.NewClient(cfg.CountriesURL, cfg.CountriesTimeout))
	srv := newServer(cfg, store.kv, catalog, sentryEnabled)
	srv.profiles.Load(ctx)
	go catalog.Load(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	slog.Info("server starting", "addr", cfg.Addr)
	return serve(srv.app, cfg.Addr, quit)
}
