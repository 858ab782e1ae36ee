package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/observability"
)

// NewApp builds the fiber application with middlewares and routes attached.
func NewApp(appName string, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		// Department names and project statuses arrive as path segments.
		UnescapePath: true,
		ErrorHandler:          ErrorHandler(logger),
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
	})
	RegisterMiddlewares(app, logger, metrics, timeout)
	routes.Metrics = metrics
	RegisterRoutes(app, routes)
	return app
}
