package database

import (
	"fmt"

	"github.com/rickgao/cursorlog/internal/model"
)

// postgresSchema creates the append-only coordinates table.
var postgresSchema = fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id        BIGSERIAL PRIMARY KEY,
		x         INTEGER NOT NULL,
		y         INTEGER NOT NULL,
		delta_x   INTEGER NOT NULL,
		delta_y   INTEGER NOT NULL,
		direction VARCHAR(%d) NOT NULL
	)`, model.CoordinatesTable, model.MaxDirectionLength)

// sqliteSchema mirrors postgresSchema. STRICT makes SQLite reject values that cannot be
// stored losslessly as integers, and the CHECK stands in for VARCHAR(10).
var sqliteSchema = fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		x         INTEGER NOT NULL,
		y         INTEGER NOT NULL,
		delta_x   INTEGER NOT NULL,
		delta_y   INTEGER NOT NULL,
		direction TEXT NOT NULL CHECK (length(direction) <= %d)
	) STRICT`, model.CoordinatesTable, model.MaxDirectionLength)

var (
	postgresInsert = fmt.Sprintf(
		`INSERT INTO %s (x, y, delta_x, delta_y, direction) VALUES ($1, $2, $3, $4, $5)`,
		model.CoordinatesTable)

	sqliteInsert = fmt.Sprintf(
		`INSERT INTO %s (x, y, delta_x, delta_y, direction) VALUES (?, ?, ?, ?, ?)`,
		model.CoordinatesTable)
)
