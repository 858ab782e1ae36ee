package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// ProjectsHandler serves /proyectos.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// List GET /proyectos.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	projects, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectList(projects)})
}

// Get GET /proyectos/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	project, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Create POST /proyectos.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	project, err := h.service.Create(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Update PUT /proyectos/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ProjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	project, err := h.service.Update(c.UserContext(), id, req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Delete DELETE /proyectos/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByStatus GET /proyectos/estado/:status.
func (h *ProjectsHandler) ListByStatus(c *fiber.Ctx) error {
	projects, err := h.service.ListByStatus(c.UserContext(), c.Params("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectList(projects)})
}

// Status GET /proyectos/:id/estado.
func (h *ProjectsHandler) Status(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.service.StatusByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "status": status}})
}
