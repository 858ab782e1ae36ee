package dto

import (
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
)

// ProjectRequest is the create and update payload. Status is free-form.
type ProjectRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	Status string `json:"status" validate:"required,max=50"`
}

func (r ProjectRequest) ToDomain() *domain.Project {
	return &domain.Project{Name: r.Name, Status: r.Status}
}

// ProjectResponse is the wire form of a project.
type ProjectResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{ID: p.ID, Name: p.Name, Status: p.Status, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func NewProjectList(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}
