package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EmployeeRequest is the create and update payload. Salary accepts a JSON
// number or a decimal string and must fit NUMERIC(12,2).
type EmployeeRequest struct {
	FirstName    string          `json:"first_name" validate:"required,max=100"`
	LastName     string          `json:"last_name" validate:"required,max=100"`
	Email        string          `json:"email" validate:"required,email,max=254"`
	HireDate     string          `json:"hire_date" validate:"required,datetime=2006-01-02"`
	Salary       decimal.Decimal `json:"salary" validate:"gte=0,lt=10000000000"`
	DepartmentID int64           `json:"department_id" validate:"required,gt=0"`
}

// ToDomain converts a validated request.
func (r EmployeeRequest) ToDomain() (*domain.Employee, error) {
	hireDate, err := domain.ParseDate(r.HireDate)
	if err != nil {
		return nil, err
	}
	return &domain.Employee{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		HireDate:     hireDate,
		Salary:       r.Salary,
		DepartmentID: r.DepartmentID,
	}, nil
}

// EmployeeResponse is the wire form of an employee.
type EmployeeResponse struct {
	ID           int64               `json:"id"`
	FirstName    string              `json:"first_name"`
	LastName     string              `json:"last_name"`
	Email        string              `json:"email"`
	HireDate     string              `json:"hire_date"`
	Salary       string              `json:"salary"`
	DepartmentID int64               `json:"department_id"`
	Department   *DepartmentResponse `json:"department,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func NewEmployeeResponse(e *domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		HireDate:     e.HireDate.Format(domain.DateLayout),
		Salary:       FormatAmount(e.Salary),
		DepartmentID: e.DepartmentID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.Department != nil {
		dept := NewDepartmentResponse(e.Department)
		resp.Department = &dept
	}
	return resp
}

func NewEmployeeList(employees []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, NewEmployeeResponse(&employees[i]))
	}
	return out
}

// AverageSalaryResponse reports a department's mean salary.
type AverageSalaryResponse struct {
	DepartmentID int64  `json:"department_id"`
	Average      string `json:"average_salary"`
}

// FormatAmount renders money with at least two fractional digits and never
// rounds away precision, so 45000 becomes "45000.00" and 100/3 keeps its digits.
func FormatAmount(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}
