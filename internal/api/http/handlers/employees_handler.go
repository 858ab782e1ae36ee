package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// EmployeesHandler serves /empleados.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// List GET /empleados.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeList(employees)})
}

// Get GET /empleados/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	emp, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(emp)})
}

// Create POST /empleados.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	input, err := req.ToDomain()
	if err != nil {
		return apperrors.NewValidationError("invalid hire_date", map[string]any{"hire_date": req.HireDate})
	}
	emp, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewEmployeeResponse(emp)})
}

// Update PUT /empleados/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.EmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	input, err := req.ToDomain()
	if err != nil {
		return apperrors.NewValidationError("invalid hire_date", map[string]any{"hire_date": req.HireDate})
	}
	emp, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(emp)})
}

// Delete DELETE /empleados/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ByDepartmentName GET /empleados/departamento/:nombre.
func (h *EmployeesHandler) ByDepartmentName(c *fiber.Ctx) error {
	employees, err := h.service.ListByDepartmentName(c.UserContext(), c.Params("nombre"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeList(employees)})
}

// AverageSalary GET /empleados/promedio-salario/:departamentoId.
func (h *EmployeesHandler) AverageSalary(c *fiber.Ctx) error {
	departmentID, err := pathID(c, "departamentoId")
	if err != nil {
		return err
	}
	avg, err := h.service.AverageSalaryByDepartment(c.UserContext(), departmentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AverageSalaryResponse{
		DepartmentID: departmentID,
		Average:      dto.FormatAmount(avg),
	}})
}

// BySalaryRange GET /empleados/rango-salario?min&max.
func (h *EmployeesHandler) BySalaryRange(c *fiber.Ctx) error {
	minSalary, err := queryDecimal(c, "min")
	if err != nil {
		return err
	}
	maxSalary, err := queryDecimal(c, "max")
	if err != nil {
		return err
	}
	employees, err := h.service.ListBySalaryRange(c.UserContext(), minSalary, maxSalary)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeList(employees)})
}

// ByHireDate GET /empleados/fecha-contratacion?inicio&fin.
func (h *EmployeesHandler) ByHireDate(c *fiber.Ctx) error {
	start, err := queryDate(c, "inicio")
	if err != nil {
		return err
	}
	end, err := queryDate(c, "fin")
	if err != nil {
		return err
	}
	employees, err := h.service.ListByHireDateRange(c.UserContext(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeList(employees)})
}
