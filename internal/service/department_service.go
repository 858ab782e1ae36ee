package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// DepartmentService manages departments.
type DepartmentService struct {
	base
}

// NewDepartmentService constructs the service.
func NewDepartmentService(deps Dependencies) *DepartmentService {
	return &DepartmentService{base: newBase(deps)}
}

// List returns every department.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.store.Departments().List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// GetByID fetches a department or fails with NotFound.
func (s *DepartmentService) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	dept, err := s.store.Departments().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.KindDepartment, id)
	}
	return dept, nil
}

// Create inserts a department; any id on the input is replaced by the store.
func (s *DepartmentService) Create(ctx context.Context, dept *domain.Department) (*domain.Department, error) {
	dept.ID = 0
	if err := s.store.Departments().Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventDepartmentCreated, domain.KindDepartment, dept.ID, nil)
	return dept, nil
}

// Update replaces the department stored under id. The payload id is ignored.
func (s *DepartmentService) Update(ctx context.Context, id int64, dept *domain.Department) (*domain.Department, error) {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		exists, err := tx.Departments().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		dept.ID = id
		return tx.Departments().Update(ctx, dept)
	})
	if err != nil {
		return nil, notFound(err, domain.KindDepartment, id)
	}
	s.publish(ctx, events.EventDepartmentUpdated, domain.KindDepartment, id, nil)
	return dept, nil
}

// Delete removes a department. Departments that still have employees are
// rejected with a conflict; employees must be reassigned or removed first.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		exists, err := tx.Departments().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		count, err := tx.Employees().CountByDepartment(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return departmentInUse(id, count)
		}
		return tx.Departments().Delete(ctx, id)
	})
	if errors.Is(err, repository.ErrForeignKey) {
		s.logger.Info("department delete raced with employee write", zap.Int64("department_id", id))
		err = departmentInUse(id, 0)
	}
	if err != nil {
		return notFound(err, domain.KindDepartment, id)
	}
	s.publish(ctx, events.EventDepartmentDeleted, domain.KindDepartment, id, nil)
	return nil
}

func departmentInUse(id, employees int64) error {
	details := map[string]any{"department_id": id}
	if employees > 0 {
		details["employees"] = employees
	}
	return apperrors.NewConflict("department still has employees", details)
}
