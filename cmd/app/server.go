package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/wichananm65/profile-registry/internal/country"
	"github.com/wichananm65/profile-registry/internal/domain/repository"
	"github.com/wichananm65/profile-registry/internal/image"
	"github.com/wichananm65/profile-registry/internal/infrastructure/config"
	"github.com/wichananm65/profile-registry/internal/infrastructure/database/inmemory"
	"github.com/wichananm65/profile-registry/internal/infrastructure/database/postgres"
	"github.com/wichananm65/profile-registry/internal/infrastructure/database/sqlite"
	"github.com/wichananm65/profile-registry/internal/profile"
)

// storage is an opened key-value backend and its release function.
type storage struct {
	kv    repository.KeyValueRepository
	close func() error
}

func (s storage) Close() {
	if s.close == nil {
		return
	}
	if err := s.close(); err != nil {
		slog.Error("storage close error", "error", err)
	}
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return storage{kv: inmemory.NewKeyValueRepository()}, nil
	case config.DriverSQLite:
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return storage{}, err
		}
		return storage{kv: repo, close: repo.Close}, nil
	case config.DriverPostgres:
		repo, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return storage{}, err
		}
		return storage{kv: repo, close: repo.Close}, nil
	default:
		return storage{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

type server struct {
	app      *fiber.App
	profiles *profile.Service
}

func newServer(cfg config.Config, kv repository.KeyValueRepository, catalog *country.Catalog, withSentry bool) *server {
	images := image.NewService(kv)
	profiles := profile.NewService(
		profile.NewStore(kv, cfg.StorageKey),
		profile.NewSession(),
		profile.NewValidator(),
		images,
	)

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	if withSentry {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"storage":   cfg.StorageDriver,
		})
	})

	profile.NewHandler(profiles).RegisterPublicRoutes(app)
	image.NewHandler(images).RegisterPublicRoutes(app)
	country.NewHandler(catalog).RegisterPublicRoutes(app)

	return &server{app: app, profiles: profiles}
}

// serve listens on addr until quit fires. A listen failure is returned to
// the caller instead of exiting.
func serve(app *fiber.App, addr string, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			slog.Error("server failed to start", "error", err)
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-quit:
	}

	slog.Info("shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	return nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}
	return c.Status(code).JSON(fiber.Map{"message": message})
}
