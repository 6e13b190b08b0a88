// Package database provides the storage engines that hold coordinate rows.
//
// Two engines share one contract:
//   - PostgreSQL through a bounded pgx pool (production)
//   - SQLite through modernc.org/sqlite (local runs and tests, no cgo)
//
// Every insert acquires one pooled connection, runs a single parameterized INSERT in an
// explicit transaction, commits, and releases the connection on every exit path.
// Provision creates the coordinates table if it does not exist; there is no versioning.
package database
