package repository

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
)

type departmentRepository struct {
	db DBTX
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (name, description)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		dept.Name,
		dept.Description,
	).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
	return mapPgError(err)
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	const query = `
        UPDATE departments SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		dept.Name,
		dept.Description,
		dept.ID,
	).Scan(&dept.CreatedAt, &dept.UpdatedAt)
	return mapPgError(err)
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM departments WHERE id=$1`
	var dept domain.Department
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&dept.ID,
		&dept.Name,
		&dept.Description,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &dept, nil
}

func (r *departmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM departments WHERE id=$1)`, id).Scan(&exists)
	return exists, mapPgError(err)
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	return rowsAffected(r.db.Exec(ctx, `DELETE FROM departments WHERE id=$1`, id))
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM departments ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	result := []domain.Department{}
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.Description, &dept.CreatedAt, &dept.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}
