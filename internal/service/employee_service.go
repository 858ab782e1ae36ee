package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// EmployeeService enforces email uniqueness and department integrity on
// employee writes and serves the derived employee queries.
type EmployeeService struct {
	base
	cache SalaryCache
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps Dependencies) *EmployeeService {
	return &EmployeeService{base: newBase(deps), cache: deps.SalaryCache}
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.store.Employees().List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.store.Employees().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.KindEmployee, id)
	}
	return emp, nil
}

// Create inserts a new employee. The email must be unused and the department
// must exist; both checks and the insert share one transaction.
func (s *EmployeeService) Create(ctx context.Context, emp *domain.Employee) (*domain.Employee, error) {
	if err := checkSalary(emp.Salary); err != nil {
		return nil, err
	}
	emp.ID = 0
	var created *domain.Employee
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := ensureEmailFree(ctx, tx, emp.Email, 0); err != nil {
			return err
		}
		if err := ensureDepartment(ctx, tx, emp.DepartmentID); err != nil {
			return err
		}
		if err := tx.Employees().Create(ctx, emp); err != nil {
			return err
		}
		var err error
		created, err = tx.Employees().GetByID(ctx, emp.ID)
		return err
	})
	if err != nil {
		return nil, s.writeError(err, emp)
	}

	s.invalidate(ctx, created.DepartmentID)
	s.publish(ctx, events.EventEmployeeCreated, domain.KindEmployee, created.ID, employeePayload(created, 0))
	return created, nil
}

// Update replaces the employee stored under id. The payload id is ignored.
func (s *EmployeeService) Update(ctx context.Context, id int64, emp *domain.Employee) (*domain.Employee, error) {
	if err := checkSalary(emp.Salary); err != nil {
		return nil, err
	}
	var (
		updated      *domain.Employee
		previousDept int64
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		current, err := tx.Employees().GetByID(ctx, id)
		if err != nil {
			return err
		}
		previousDept = current.DepartmentID

		if err := ensureEmailFree(ctx, tx, emp.Email, id); err != nil {
			return err
		}
		if err := ensureDepartment(ctx, tx, emp.DepartmentID); err != nil {
			return err
		}
		emp.ID = id
		if err := tx.Employees().Update(ctx, emp); err != nil {
			return err
		}
		updated, err = tx.Employees().GetByID(ctx, id)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewEntityNotFound(domain.KindEmployee, id)
	}
	if err != nil {
		return nil, s.writeError(err, emp)
	}

	s.invalidate(ctx, previousDept, updated.DepartmentID)
	s.publish(ctx, events.EventEmployeeUpdated, domain.KindEmployee, id, employeePayload(updated, previousDept))
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	var removed *domain.Employee
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		emp, err := tx.Employees().GetByID(ctx, id)
		if err != nil {
			return err
		}
		removed = emp
		return tx.Employees().Delete(ctx, id)
	})
	if err != nil {
		return notFound(err, domain.KindEmployee, id)
	}

	s.invalidate(ctx, removed.DepartmentID)
	s.publish(ctx, events.EventEmployeeDeleted, domain.KindEmployee, id, employeePayload(removed, 0))
	return nil
}

// ListByDepartmentName returns employees whose department name equals name
// exactly. No match yields an empty slice.
func (s *EmployeeService) ListByDepartmentName(ctx context.Context, name string) ([]domain.Employee, error) {
	employees, err := s.store.Employees().ListByDepartmentName(ctx, name)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

// AverageSalaryByDepartment returns the mean salary of the department's
// employees, or zero when it has none. Unknown departments also yield zero.
func (s *EmployeeService) AverageSalaryByDepartment(ctx context.Context, departmentID int64) (decimal.Decimal, error) {
	var (
		gen    int64
		fillOK bool
	)
	if s.cache != nil {
		avg, ok, err := s.cache.Get(ctx, departmentID)
		switch {
		case err != nil:
			s.logger.Warn("salary cache read failed", zap.Int64("department_id", departmentID), zap.Error(err))
		case ok:
			return avg, nil
		}
		// The generation must be read before the store so a concurrent write
		// in between makes the fill below a no-op.
		if gen, err = s.cache.Generation(ctx, departmentID); err != nil {
			s.logger.Warn("salary cache generation read failed", zap.Int64("department_id", departmentID), zap.Error(err))
		} else {
			fillOK = true
		}
	}

	avg, found, err := s.store.Employees().AverageSalaryByDepartment(ctx, departmentID)
	if err != nil {
		return decimal.Zero, apperrors.MapError(err)
	}
	if !found {
		avg = decimal.Zero
	}

	if fillOK {
		stored, err := s.cache.Set(ctx, departmentID, gen, avg)
		switch {
		case err != nil:
			s.logger.Warn("salary cache write failed", zap.Int64("department_id", departmentID), zap.Error(err))
		case !stored:
			s.logger.Debug("salary cache fill skipped after concurrent write", zap.Int64("department_id", departmentID))
		}
	}
	return avg, nil
}

// ListBySalaryRange returns employees with min <= salary <= max. An inverted
// range yields an empty slice.
func (s *EmployeeService) ListBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Employee, error) {
	if min.GreaterThan(max) {
		return []domain.Employee{}, nil
	}
	employees, err := s.store.Employees().ListBySalaryRange(ctx, min, max)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

// ListByHireDateRange returns employees hired between start and end, both
// days included. Time of day is ignored.
func (s *EmployeeService) ListByHireDateRange(ctx context.Context, start, end time.Time) ([]domain.Employee, error) {
	start, end = domain.Date(start), domain.Date(end)
	if start.After(end) {
		return []domain.Employee{}, nil
	}
	employees, err := s.store.Employees().ListByHireDateRange(ctx, start, end)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

// writeError translates store rejections that slipped past the in-transaction
// checks, such as a concurrent insert of the same email.
func (s *EmployeeService) writeError(err error, emp *domain.Employee) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperrors.NewDuplicateEmail(emp.Email)
	case errors.Is(err, repository.ErrForeignKey):
		return apperrors.NewEntityNotFound(domain.KindDepartment, emp.DepartmentID)
	default:
		return apperrors.MapError(err)
	}
}

func (s *EmployeeService) invalidate(ctx context.Context, departmentIDs ...int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, departmentIDs...); err != nil {
		s.logger.Warn("salary cache invalidation failed", zap.Int64s("department_ids", departmentIDs), zap.Error(err))
	}
}

// checkSalary rejects salaries outside the stored column range.
func checkSalary(salary decimal.Decimal) error {
	if domain.SalaryInRange(salary) {
		return nil
	}
	return apperrors.NewValidationError("salary out of range", map[string]any{
		"salary": "must be at least 0 and below " + domain.MaxSalary.String(),
	})
}

// ensureEmailFree fails with DuplicateEmail when another employee than self
// already owns email. Pass self=0 on create.
func ensureEmailFree(ctx context.Context, tx repository.Store, email string, self int64) error {
	owner, err := tx.Employees().GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner.ID != self {
		return apperrors.NewDuplicateEmail(email)
	}
	return nil
}

func ensureDepartment(ctx context.Context, tx repository.Store, id int64) error {
	exists, err := tx.Departments().Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewEntityNotFound(domain.KindDepartment, id)
	}
	return nil
}

func employeePayload(emp *domain.Employee, previousDept int64) events.EmployeeChangedPayload {
	payload := events.EmployeeChangedPayload{
		Email:        emp.Email,
		DepartmentID: emp.DepartmentID,
		Salary:       emp.Salary,
	}
	if previousDept != emp.DepartmentID {
		payload.PreviousDepartmentID = previousDept
	}
	return payload
}
