package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staff-console/internal/api/http"
	"github.com/spec-kit/staff-console/internal/api/http/handlers"
	"github.com/spec-kit/staff-console/internal/auth"
	"github.com/spec-kit/staff-console/internal/config"
	"github.com/spec-kit/staff-console/internal/console"
	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/events"
	"github.com/spec-kit/staff-console/internal/manager"
	"github.com/spec-kit/staff-console/internal/observability"
	"github.com/spec-kit/staff-console/internal/remote"
	"github.com/spec-kit/staff-console/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	st, closeStorage, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open session storage", zap.Error(err))
	}
	defer closeStorage()

	api := remote.New(cfg.Remote, logger)
	dispatcher := events.NewInMemoryDispatcher()
	buffer := events.NewBuffer(dispatcher)
	registry := console.NewRegistry(api, dispatcher, cfg.Console, logger)

	tokens := auth.NewTokenManager(cfg.Session.TokenSecret, cfg.Session.TokenTTL())
	authMiddleware := auth.NewMiddleware(tokens, st, cfg.Session.CookieName, logger)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, st),
		Auth:    handlers.NewAuthHandler(api, tokens, st, registry, buffer, cfg.Session.CookieName, logger),
		Console: handlers.NewConsoleHandler(api, buffer),
		Users: handlers.NewResourceHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.ManagedUser] { return m.Users }),
		Admins: handlers.NewResourceHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.AdminAccount] { return m.Admins }),
		Departments: handlers.NewResourceHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.Department] { return m.Departments }),
		Shifts: handlers.NewResourceHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.Shift] { return m.Shifts }),
		Stations: handlers.NewResourceHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.Station] { return m.Stations }),
		UserReports: handlers.NewReportsHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.Report] { return m.UserReports }),
		AdminReports: handlers.NewReportsHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.Report] { return m.AdminReports }),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func openStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, func(), error) {
	switch cfg.Storage.Backend {
	case "redis":
		r := storage.NewRedis(cfg.Redis, logger)
		return r, r.Close, nil
	case "sqlite":
		s, err := storage.NewSQLite(cfg.Storage.Dir, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "memory":
		return storage.NewMemory(), func() {}, nil
	default:
		return storage.NewFile(cfg.Storage.Dir, logger), func() {}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
