// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/repository/sqlitestore"
)

// NewStore returns a migrated store over a private in-memory SQLite database
// that is closed when the test ends.
func NewStore(t testing.TB) repository.Store {
	t.Helper()
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	db, err := persistence.NewSQLite(ctx, config.SQLiteConfig{Path: persistence.MemoryPath}, logger)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, persistence.RunMigrations(ctx, config.DriverSQLite, db, logger))
	return sqlitestore.New(db.DB)
}
