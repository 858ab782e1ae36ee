package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	BasePath    string
	Health      *handlers.HealthHandler
	Departments *handlers.DepartmentsHandler
	Employees   *handlers.EmployeesHandler
	Projects    *handlers.ProjectsHandler
	Metrics     *observability.Metrics
	// AuthMiddleware guards mutating routes when set.
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	var guards []fiber.Handler
	if cfg.AuthMiddleware != nil {
		guards = append(guards, auth.WritesOnly(cfg.AuthMiddleware.Handle), auth.WritesOnly(auth.RequireWriter()))
	}

	api := app.Group(cfg.BasePath, guards...)

	departments := api.Group("/departamentos")
	departments.Get("/", cfg.Departments.List)
	departments.Post("/", cfg.Departments.Create)
	departments.Get("/:id", cfg.Departments.Get)
	departments.Put("/:id", cfg.Departments.Update)
	departments.Delete("/:id", cfg.Departments.Delete)

	employees := api.Group("/empleados")
	employees.Get("/", cfg.Employees.List)
	employees.Post("/", cfg.Employees.Create)
	employees.Get("/departamento/:nombre", cfg.Employees.ByDepartmentName)
	employees.Get("/promedio-salario/:departamentoId", cfg.Employees.AverageSalary)
	employees.Get("/rango-salario", cfg.Employees.BySalaryRange)
	employees.Get("/fecha-contratacion", cfg.Employees.ByHireDate)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Put("/:id", cfg.Employees.Update)
	employees.Delete("/:id", cfg.Employees.Delete)

	projects := api.Group("/proyectos")
	projects.Get("/", cfg.Projects.List)
	projects.Post("/", cfg.Projects.Create)
	projects.Get("/estado/:status", cfg.Projects.ListByStatus)
	projects.Get("/:id/estado", cfg.Projects.Status)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Put("/:id", cfg.Projects.Update)
	projects.Delete("/:id", cfg.Projects.Delete)
}
