// Package sqlitestore implements repository.Store on an embedded SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/spec-kit/employee-service/internal/repository"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type store struct {
	db *sql.DB
	q  DBTX
	tx *sql.Tx
}

// New builds a Store on an open SQLite handle whose schema is migrated.
func New(db *sql.DB) repository.Store {
	return &store{db: db, q: db}
}

func (s *store) Departments() repository.DepartmentRepository {
	return &departmentRepository{q: s.q}
}

func (s *store) Employees() repository.EmployeeRepository {
	return &employeeRepository{q: s.q}
}

func (s *store) Projects() repository.ProjectRepository {
	return &projectRepository{q: s.q}
}

func (s *store) WithinTx(ctx context.Context, fn func(repository.Store) error) (err error) {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(&store{db: s.db, q: tx, tx: tx})
}

func (s *store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		// Extended result codes keep the primary code in the low byte.
		if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			msg := sqliteErr.Error()
			switch {
			case strings.Contains(msg, "UNIQUE constraint failed: employees.email"):
				return fmt.Errorf("%w: %s", repository.ErrDuplicateEmail, msg)
			case strings.Contains(msg, "FOREIGN KEY constraint failed"):
				return fmt.Errorf("%w: %s", repository.ErrForeignKey, msg)
			}
		}
	}
	return err
}

func rowsAffected(res sql.Result, err error) error {
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}
