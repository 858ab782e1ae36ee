package repository

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
)

type projectRepository struct {
	db DBTX
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (name, status)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, project.Name, project.Status).
		Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	return mapPgError(err)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET name=$1, status=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query, project.Name, project.Status, project.ID).
		Scan(&project.CreatedAt, &project.UpdatedAt)
	return mapPgError(err)
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	const query = `
        SELECT id, name, status, created_at, updated_at
        FROM projects WHERE id=$1`
	var project domain.Project
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Status,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &project, nil
}

func (r *projectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id=$1)`, id).Scan(&exists)
	return exists, mapPgError(err)
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	return rowsAffected(r.db.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id))
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	return r.list(ctx, `SELECT id, name, status, created_at, updated_at FROM projects ORDER BY id`)
}

func (r *projectRepository) ListByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	return r.list(ctx, `SELECT id, name, status, created_at, updated_at FROM projects WHERE status=$1 ORDER BY id`, status)
}

func (r *projectRepository) list(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	result := []domain.Project{}
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(&project.ID, &project.Name, &project.Status, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	return result, rows.Err()
}
