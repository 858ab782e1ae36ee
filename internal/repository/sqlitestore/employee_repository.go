package sqlitestore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/employee-service/internal/domain"
)

const employeeSelect = `
    SELECT e.id, e.first_name, e.last_name, e.email, e.hire_date, e.salary_cents, e.department_id,
           d.name, d.description, d.created_at, d.updated_at, e.created_at, e.updated_at
    FROM employees e
    JOIN departments d ON d.id = e.department_id`

var errSalaryOverflow = errors.New("salary does not fit in integer cents")

type employeeRepository struct {
	q DBTX
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	cents, err := toCents(emp.Salary)
	if err != nil {
		return err
	}
	ts := now()
	res, err := r.q.ExecContext(ctx, `
        INSERT INTO employees (first_name, last_name, email, hire_date, salary_cents, department_id, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?,?)`,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		formatDate(emp.HireDate),
		cents,
		emp.DepartmentID,
		formatTime(ts),
		formatTime(ts),
	)
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*emp = *stored
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	cents, err := toCents(emp.Salary)
	if err != nil {
		return err
	}
	if err := rowsAffected(r.q.ExecContext(ctx, `
        UPDATE employees
        SET first_name=?, last_name=?, email=?, hire_date=?, salary_cents=?, department_id=?, updated_at=?
        WHERE id=?`,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		formatDate(emp.HireDate),
		cents,
		emp.DepartmentID,
		formatTime(now()),
		emp.ID,
	)); err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, emp.ID)
	if err != nil {
		return err
	}
	*emp = *stored
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.single(ctx, employeeSelect+` WHERE e.id=?`, id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.single(ctx, employeeSelect+` WHERE e.email=?`, email)
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	return rowsAffected(r.q.ExecContext(ctx, `DELETE FROM employees WHERE id=?`, id))
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	return r.list(ctx, employeeSelect+` ORDER BY e.id`)
}

func (r *employeeRepository) CountByDepartment(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE department_id=?`, departmentID).Scan(&count)
	return count, mapError(err)
}

func (r *employeeRepository) ListByDepartmentName(ctx context.Context, name string) ([]domain.Employee, error) {
	return r.list(ctx, employeeSelect+` WHERE d.name=? ORDER BY e.id`, name)
}

// AverageSalaryByDepartment sums integer cents in SQL and divides in decimal
// arithmetic so the mean carries no floating point drift.
func (r *employeeRepository) AverageSalaryByDepartment(ctx context.Context, departmentID int64) (decimal.Decimal, bool, error) {
	var sum, count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(salary_cents), 0), COUNT(*) FROM employees WHERE department_id=?`,
		departmentID,
	).Scan(&sum, &count)
	if err != nil {
		return decimal.Zero, false, mapError(err)
	}
	if count == 0 {
		return decimal.Zero, false, nil
	}
	return domain.MeanSalary(fromCents(sum), count), true, nil
}

func (r *employeeRepository) ListBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Employee, error) {
	// Round the bounds inward so fractional cents cannot widen the range.
	minCents := clampCents(min.Shift(2).Ceil())
	maxCents := clampCents(max.Shift(2).Floor())
	return r.list(ctx, employeeSelect+` WHERE e.salary_cents BETWEEN ? AND ? ORDER BY e.id`, minCents, maxCents)
}

func (r *employeeRepository) ListByHireDateRange(ctx context.Context, start, end time.Time) ([]domain.Employee, error) {
	return r.list(ctx, employeeSelect+` WHERE e.hire_date BETWEEN ? AND ? ORDER BY e.id`,
		formatDate(start), formatDate(end))
}

func (r *employeeRepository) single(ctx context.Context, query string, args ...any) (*domain.Employee, error) {
	return scanEmployee(r.q.QueryRowContext(ctx, query, args...))
}

func (r *employeeRepository) list(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}

func scanEmployee(row scanner) (*domain.Employee, error) {
	var (
		emp                                        domain.Employee
		dept                                       domain.Department
		hireDate                                   string
		cents                                      int64
		deptCreated, deptUpdated, created, updated string
	)
	if err := row.Scan(
		&emp.ID,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&hireDate,
		&cents,
		&emp.DepartmentID,
		&dept.Name,
		&dept.Description,
		&deptCreated,
		&deptUpdated,
		&created,
		&updated,
	); err != nil {
		return nil, mapError(err)
	}

	var err error
	if emp.HireDate, err = domain.ParseDate(hireDate); err != nil {
		return nil, err
	}
	if dept.CreatedAt, err = parseTime(deptCreated); err != nil {
		return nil, err
	}
	if dept.UpdatedAt, err = parseTime(deptUpdated); err != nil {
		return nil, err
	}
	if emp.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if emp.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	emp.Salary = fromCents(cents)
	dept.ID = emp.DepartmentID
	emp.Department = &dept
	return &emp, nil
}

func formatDate(t time.Time) string {
	return domain.Date(t).Format(domain.DateLayout)
}

var (
	centsCeiling = decimal.NewFromInt(math.MaxInt64)
	centsFloor   = decimal.NewFromInt(math.MinInt64)
)

// toCents converts a salary to integer cents, refusing values that do not
// fit the column instead of letting them wrap.
func toCents(d decimal.Decimal) (int64, error) {
	cents := d.Round(2).Shift(2)
	if cents.GreaterThan(centsCeiling) || cents.LessThan(centsFloor) {
		return 0, fmt.Errorf("%w: %s", errSalaryOverflow, d.String())
	}
	return cents.IntPart(), nil
}

// clampCents pins an integral cents bound to the int64 range. Stored values
// always fit, so clamping never changes which rows a range matches.
func clampCents(cents decimal.Decimal) int64 {
	switch {
	case cents.GreaterThan(centsCeiling):
		return math.MaxInt64
	case cents.LessThan(centsFloor):
		return math.MinInt64
	}
	return cents.IntPart()
}

func fromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
