package sqlitestore

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
)

type departmentRepository struct {
	q DBTX
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	ts := now()
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO departments (name, description, created_at, updated_at) VALUES (?,?,?,?)`,
		dept.Name, dept.Description, formatTime(ts), formatTime(ts))
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	dept.ID, dept.CreatedAt, dept.UpdatedAt = id, ts, ts
	return nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	ts := now()
	if err := rowsAffected(r.q.ExecContext(ctx,
		`UPDATE departments SET name=?, description=?, updated_at=? WHERE id=?`,
		dept.Name, dept.Description, formatTime(ts), dept.ID)); err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, dept.ID)
	if err != nil {
		return err
	}
	*dept = *stored
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM departments WHERE id=?`, id)
	return scanDepartment(row)
}

func (r *departmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM departments WHERE id=?)`, id).Scan(&exists)
	return exists, mapError(err)
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	return rowsAffected(r.q.ExecContext(ctx, `DELETE FROM departments WHERE id=?`, id))
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM departments ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.Department{}
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *dept)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDepartment(row scanner) (*domain.Department, error) {
	var (
		dept             domain.Department
		created, updated string
	)
	if err := row.Scan(&dept.ID, &dept.Name, &dept.Description, &created, &updated); err != nil {
		return nil, mapError(err)
	}
	var err error
	if dept.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if dept.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &dept, nil
}
