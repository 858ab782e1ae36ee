package persistence

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/migrations"
)

// Execer runs a batch of SQL statements.
type Execer interface {
	Exec(ctx context.Context, statement string) error
}

// RunMigrations executes the embedded SQL migrations for the given dialect in lexical order.
func RunMigrations(ctx context.Context, dialect string, db Execer, logger *zap.Logger) error {
	entries, err := fs.ReadDir(migrations.FS, dialect)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filenames = append(filenames, entry.Name())
	}

	sort.Strings(filenames)

	for _, name := range filenames {
		content, err := fs.ReadFile(migrations.FS, path.Join(dialect, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		logger.Info("applying migration", zap.String("dialect", dialect), zap.String("file", name))
		if err := db.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	logger.Info("migrations applied", zap.String("dialect", dialect), zap.Int("count", len(filenames)))
	return nil
}
