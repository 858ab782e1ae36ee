package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/testutil"
)

type services struct {
	departments *DepartmentService
	employees   *EmployeeService
	projects    *ProjectService
	dispatcher  events.Dispatcher
}

func newServices(t *testing.T, cache SalaryCache) services {
	t.Helper()
	deps := Dependencies{
		Store:       testutil.NewStore(t),
		Dispatcher:  events.NewInMemoryDispatcher(),
		Logger:      zaptest.NewLogger(t),
		SalaryCache: cache,
	}
	return services{
		departments: NewDepartmentService(deps),
		employees:   NewEmployeeService(deps),
		projects:    NewProjectService(deps),
		dispatcher:  deps.Dispatcher,
	}
}

func (s services) department(t *testing.T, name string) *domain.Department {
	t.Helper()
	dept, err := s.departments.Create(context.Background(), &domain.Department{Name: name, Description: name + " team"})
	require.NoError(t, err)
	return dept
}

func (s services) employee(t *testing.T, email string, departmentID int64, salary, hired string) *domain.Employee {
	t.Helper()
	emp, err := s.employees.Create(context.Background(), newEmployee(t, email, departmentID, salary, hired))
	require.NoError(t, err)
	return emp
}

func newEmployee(t *testing.T, email string, departmentID int64, salary, hired string) *domain.Employee {
	t.Helper()
	hireDate, err := domain.ParseDate(hired)
	require.NoError(t, err)
	return &domain.Employee{
		FirstName:    "Ana",
		LastName:     "Lopez",
		Email:        email,
		HireDate:     hireDate,
		Salary:       decimal.RequireFromString(salary),
		DepartmentID: departmentID,
	}
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}
