package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rickgao/cursorlog/internal/config"
	"github.com/rickgao/cursorlog/internal/model"
)

// Engine is a storage engine for coordinate rows.
type Engine interface {
	// InsertCoordinate writes one row in its own transaction.
	InsertCoordinate(ctx context.Context, ev model.CoordinateEvent) error

	// Provision creates the coordinates table if it does not exist.
	Provision(ctx context.Context) error

	// Ping verifies the engine is reachable.
	Ping(ctx context.Context) error

	// Close releases every pooled connection.
	Close()

	// Driver returns the configured driver name.
	Driver() string
}

// Open connects the engine selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		logger.Info("connecting to database",
			"driver", cfg.Driver,
			"host", cfg.Postgres.Host,
			"port", cfg.Postgres.Port,
			"database", cfg.Postgres.Name,
			"max_conns", cfg.Postgres.MaxConns,
		)
		pool, err := Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return NewPostgresStore(pool), nil

	case config.DriverSQLite:
		logger.Info("opening database",
			"driver", cfg.Driver,
			"path", cfg.SQLite.Path,
			"max_conns", cfg.SQLite.MaxConns,
		)
		store, err := OpenSQLite(ctx, cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
