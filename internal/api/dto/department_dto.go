package dto

import (
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
)

// DepartmentRequest is the create and update payload.
type DepartmentRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

func (r DepartmentRequest) ToDomain() *domain.Department {
	return &domain.Department{Name: r.Name, Description: r.Description}
}

// DepartmentResponse is the wire form of a department.
type DepartmentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func NewDepartmentList(depts []domain.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(depts))
	for i := range depts {
		out = append(out, NewDepartmentResponse(&depts[i]))
	}
	return out
}
