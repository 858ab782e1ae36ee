package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/employee-service/internal/api/http"
	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/cache"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/service"
	"github.com/spec-kit/employee-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger, cfg.Store.RunMigrations)
	if err != nil {
		return err
	}
	defer closeStore()

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	metrics.ObserveEvents(dispatcher)

	deps := service.Dependencies{Store: store, Dispatcher: dispatcher, Logger: logger}
	pingers := map[string]handlers.Pinger{"store": store}
	if cfg.Cache.Enabled {
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		deps.SalaryCache = cache.NewSalaryCache(redis.Client, cfg.Cache.TTL())
		pingers["redis"] = redis
	}

	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifier := worker.NewNotificationWorker(notifications, logger, cfg.Notification.QueueSize)
	worker.StartNotificationWorker(notifier)

	routes := httptransport.RouteConfig{
		BasePath:    cfg.App.BasePath,
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pingers),
		Departments: handlers.NewDepartmentsHandler(service.NewDepartmentService(deps)),
		Employees:   handlers.NewEmployeesHandler(service.NewEmployeeService(deps)),
		Projects:    handlers.NewProjectsHandler(service.NewProjectService(deps)),
	}
	if cfg.Auth.Enabled {
		tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.App.Name, cfg.Auth.TokenTTLMinute)
		routes.AuthMiddleware = auth.NewAuthMiddleware(tokens)
	}
	app := httptransport.NewApp(cfg.App.Name, logger, metrics, cfg.App.RequestTimeout(), routes)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("cache", cfg.Cache.Enabled),
			zap.Bool("auth", cfg.Auth.Enabled))
		return app.Listen(cfg.App.Addr())
	})
	g.Go(func() error {
		return notifier.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
