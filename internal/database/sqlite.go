package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/rickgao/cursorlog/internal/config"
	"github.com/rickgao/cursorlog/internal/model"
)

// SQLiteStore writes coordinates to an embedded SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at cfg.Path.
func OpenSQLite(ctx context.Context, cfg config.SQLiteConfig) (*SQLiteStore, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := "file:" + filepath.Clean(cfg.Path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns < 1 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// InsertCoordinate acquires a pooled connection, inserts one row in an explicit
// transaction and commits. The connection goes back to the pool on every path.
func (s *SQLiteStore) InsertCoordinate(ctx context.Context, ev model.CoordinateEvent) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	// No-op after a successful commit.
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, sqliteInsert, coordinateArgs(ev)...); err != nil {
		return fmt.Errorf("insert coordinate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Provision creates the coordinates table if needed.
func (s *SQLiteStore) Provision(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create coordinates table: %w", err)
	}
	return nil
}

// Ping verifies the database file is usable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *SQLiteStore) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// Driver returns "sqlite".
func (s *SQLiteStore) Driver() string {
	return config.DriverSQLite
}

// Coordinates returns every stored row in insertion order. Only tests and local
// tooling read rows back; clients have no read path.
func (s *SQLiteStore) Coordinates(ctx context.Context) ([]model.CoordinateRow, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, x, y, delta_x, delta_y, direction FROM %s ORDER BY id`, model.CoordinatesTable))
	if err != nil {
		return nil, fmt.Errorf("query coordinates: %w", err)
	}
	defer rows.Close()

	var out []model.CoordinateRow
	for rows.Next() {
		var r model.CoordinateRow
		if err := rows.Scan(&r.ID, &r.X, &r.Y, &r.DeltaX, &r.DeltaY, &r.Direction); err != nil {
			return nil, fmt.Errorf("scan coordinate: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
