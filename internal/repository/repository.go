package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/employee-service/internal/domain"
)

var (
	// ErrNotFound is returned when a keyed lookup or mutation matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when the unique email index rejects a write.
	ErrDuplicateEmail = errors.New("employee email already exists")
	// ErrForeignKey is returned when a write or delete violates a foreign key.
	ErrForeignKey = errors.New("foreign key violation")
)

// Store groups the entity repositories behind one transactional boundary.
type Store interface {
	Departments() DepartmentRepository
	Employees() EmployeeRepository
	Projects() ProjectRepository
	// WithinTx runs fn against a store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(Store) error) error
	Ping(ctx context.Context) error
}

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Department, error)
}

// EmployeeRepository manages employee persistence and derived queries.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Employee, error)
	CountByDepartment(ctx context.Context, departmentID int64) (int64, error)
	ListByDepartmentName(ctx context.Context, name string) ([]domain.Employee, error)
	// AverageSalaryByDepartment reports false when the department has no employees.
	AverageSalaryByDepartment(ctx context.Context, departmentID int64) (decimal.Decimal, bool, error)
	ListBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Employee, error)
	ListByHireDateRange(ctx context.Context, start, end time.Time) ([]domain.Employee, error)
}

// ProjectRepository manages project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Project, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Project, error)
}
