package service

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// ProjectService manages projects.
type ProjectService struct {
	base
}

// NewProjectService constructs the service.
func NewProjectService(deps Dependencies) *ProjectService {
	return &ProjectService{base: newBase(deps)}
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.store.Projects().List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.KindProject, id)
	}
	return project, nil
}

// StatusByID returns only the status token of a project.
func (s *ProjectService) StatusByID(ctx context.Context, id int64) (string, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return project.Status, nil
}

func (s *ProjectService) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	project.ID = 0
	if err := s.store.Projects().Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventProjectCreated, domain.KindProject, project.ID, projectPayload(project))
	return project, nil
}

// Update replaces the project stored under id. Any status string is accepted.
func (s *ProjectService) Update(ctx context.Context, id int64, project *domain.Project) (*domain.Project, error) {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		exists, err := tx.Projects().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		project.ID = id
		return tx.Projects().Update(ctx, project)
	})
	if err != nil {
		return nil, notFound(err, domain.KindProject, id)
	}
	s.publish(ctx, events.EventProjectUpdated, domain.KindProject, id, projectPayload(project))
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		exists, err := tx.Projects().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		return tx.Projects().Delete(ctx, id)
	})
	if err != nil {
		return notFound(err, domain.KindProject, id)
	}
	s.publish(ctx, events.EventProjectDeleted, domain.KindProject, id, nil)
	return nil
}

// ListByStatus returns projects whose status equals status exactly. An empty
// result is not an error.
func (s *ProjectService) ListByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	projects, err := s.store.Projects().ListByStatus(ctx, status)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

func projectPayload(p *domain.Project) events.ProjectChangedPayload {
	return events.ProjectChangedPayload{Name: p.Name, Status: p.Status}
}
