package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/employee-service/internal/domain"
)

const employeeSelect = `
        SELECT e.id, e.first_name, e.last_name, e.email, e.hire_date, e.salary::text, e.department_id,
               d.name, d.description, d.created_at, d.updated_at, e.created_at, e.updated_at
        FROM employees e
        JOIN departments d ON d.id = e.department_id`

type employeeRepository struct {
	db DBTX
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (first_name, last_name, email, hire_date, salary, department_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, salary::text, created_at, updated_at`
	var salary string
	if err := r.db.QueryRow(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		domain.Date(emp.HireDate),
		emp.Salary,
		emp.DepartmentID,
	).Scan(&emp.ID, &salary, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return setSalary(emp, salary)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees
        SET first_name=$1, last_name=$2, email=$3, hire_date=$4, salary=$5, department_id=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING salary::text, created_at, updated_at`
	var salary string
	if err := r.db.QueryRow(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		domain.Date(emp.HireDate),
		emp.Salary,
		emp.DepartmentID,
		emp.ID,
	).Scan(&salary, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return setSalary(emp, salary)
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	rows, err := r.db.Query(ctx, employeeSelect+` WHERE e.id=$1`, id)
	return singleEmployee(rows, err)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	rows, err := r.db.Query(ctx, employeeSelect+` WHERE e.email=$1`, email)
	return singleEmployee(rows, err)
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	return rowsAffected(r.db.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id))
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	return r.list(ctx, employeeSelect+` ORDER BY e.id`)
}

func (r *employeeRepository) CountByDepartment(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department_id=$1`, departmentID).Scan(&count)
	return count, mapPgError(err)
}

func (r *employeeRepository) ListByDepartmentName(ctx context.Context, name string) ([]domain.Employee, error) {
	return r.list(ctx, employeeSelect+` WHERE d.name=$1 ORDER BY e.id`, name)
}

// AverageSalaryByDepartment divides the exact NUMERIC total in decimal
// arithmetic so both stores agree on the scale of the mean.
func (r *employeeRepository) AverageSalaryByDepartment(ctx context.Context, departmentID int64) (decimal.Decimal, bool, error) {
	var (
		total string
		count int64
	)
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(salary), 0)::text, COUNT(*) FROM employees WHERE department_id=$1`,
		departmentID,
	).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, false, mapPgError(err)
	}
	if count == 0 {
		return decimal.Zero, false, nil
	}
	sum, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("parse salary total %q: %w", total, err)
	}
	return domain.MeanSalary(sum, count), true, nil
}

func (r *employeeRepository) ListBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Employee, error) {
	return r.list(ctx, employeeSelect+` WHERE e.salary BETWEEN $1 AND $2 ORDER BY e.id`, min, max)
}

func (r *employeeRepository) ListByHireDateRange(ctx context.Context, start, end time.Time) ([]domain.Employee, error) {
	return r.list(ctx, employeeSelect+` WHERE e.hire_date BETWEEN $1 AND $2 ORDER BY e.id`,
		domain.Date(start), domain.Date(end))
}

func (r *employeeRepository) list(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func singleEmployee(rows pgx.Rows, err error) (*domain.Employee, error) {
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()
	result, err := scanEmployees(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return &result[0], nil
}

func scanEmployees(rows pgx.Rows) ([]domain.Employee, error) {
	result := []domain.Employee{}
	for rows.Next() {
		var (
			emp    domain.Employee
			dept   domain.Department
			salary string
		)
		if err := rows.Scan(
			&emp.ID,
			&emp.FirstName,
			&emp.LastName,
			&emp.Email,
			&emp.HireDate,
			&salary,
			&emp.DepartmentID,
			&dept.Name,
			&dept.Description,
			&dept.CreatedAt,
			&dept.UpdatedAt,
			&emp.CreatedAt,
			&emp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := setSalary(&emp, salary); err != nil {
			return nil, err
		}
		dept.ID = emp.DepartmentID
		emp.Department = &dept
		result = append(result, emp)
	}
	return result, rows.Err()
}

func setSalary(emp *domain.Employee, raw string) error {
	salary, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("parse salary %q: %w", raw, err)
	}
	emp.Salary = salary
	return nil
}
