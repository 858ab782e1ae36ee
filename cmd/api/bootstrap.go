package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/repository/sqlitestore"
)

// loadRuntime reads configuration and builds the logger shared by every command.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

// openStore connects the configured backend and optionally migrates it. The
// returned close function releases the connection.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, migrate bool) (repository.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			if err := persistence.RunMigrations(ctx, config.DriverPostgres, pg, logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		return repository.NewPostgresStore(pg.PoolHandle()), pg.Close, nil
	case config.DriverSQLite:
		db, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			if err := persistence.RunMigrations(ctx, config.DriverSQLite, db, logger); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		return sqlitestore.New(db.DB), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
