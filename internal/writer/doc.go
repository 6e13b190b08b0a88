// Package writer implements the coordinate persistence writer.
//
// Each validated event becomes exactly one INSERT in its own transaction. Writes run
// under a bounded concurrency limit sized to the storage pool, never on the goroutine
// that accepted the connection. A failed write is logged and dropped: there is no retry,
// and callers only ever see ErrPersistence, never the driver's error text.
//
// All writes are append-only (never update, never delete).
package writer
