package sqlitestore

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
)

const projectSelect = `SELECT id, name, status, created_at, updated_at FROM projects`

type projectRepository struct {
	q DBTX
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	ts := now()
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO projects (name, status, created_at, updated_at) VALUES (?,?,?,?)`,
		project.Name, project.Status, formatTime(ts), formatTime(ts))
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	project.ID, project.CreatedAt, project.UpdatedAt = id, ts, ts
	return nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	ts := now()
	if err := rowsAffected(r.q.ExecContext(ctx,
		`UPDATE projects SET name=?, status=?, updated_at=? WHERE id=?`,
		project.Name, project.Status, formatTime(ts), project.ID)); err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, project.ID)
	if err != nil {
		return err
	}
	*project = *stored
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return scanProject(r.q.QueryRowContext(ctx, projectSelect+` WHERE id=?`, id))
}

func (r *projectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id=?)`, id).Scan(&exists)
	return exists, mapError(err)
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	return rowsAffected(r.q.ExecContext(ctx, `DELETE FROM projects WHERE id=?`, id))
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	return r.list(ctx, projectSelect+` ORDER BY id`)
}

func (r *projectRepository) ListByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	return r.list(ctx, projectSelect+` WHERE status=? ORDER BY id`, status)
}

func (r *projectRepository) list(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *project)
	}
	return result, rows.Err()
}

func scanProject(row scanner) (*domain.Project, error) {
	var (
		project          domain.Project
		created, updated string
	)
	if err := row.Scan(&project.ID, &project.Name, &project.Status, &created, &updated); err != nil {
		return nil, mapError(err)
	}
	var err error
	if project.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if project.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &project, nil
}
