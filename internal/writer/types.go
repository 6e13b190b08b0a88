package writer

import (
	"context"
	"errors"
	"time"

	"github.com/rickgao/cursorlog/internal/model"
)

// Errors
var (
	// ErrPersistence is the only failure a caller of Write sees.
	ErrPersistence = errors.New("persistence failed")

	// ErrStopped is joined with ErrPersistence for writes submitted after Stop.
	ErrStopped = errors.New("writer stopped")
)

// Store executes a single-row insert of a coordinate event.
//
// Implementations must run one parameterized statement inside an explicit transaction,
// commit it, and release the underlying connection on every exit path.
type Store interface {
	InsertCoordinate(ctx context.Context, ev model.CoordinateEvent) error
}

// Observer receives the outcome of every insert attempt.
type Observer interface {
	ObserveWrite(d time.Duration, err error)
}

// WriterConfig contains configuration for the coordinate writer.
type WriterConfig struct {
	// Concurrency is the maximum number of inserts in flight. Keep it at or below the
	// storage pool size.
	Concurrency int

	// WriteTimeout bounds one insert. Zero or negative disables the timeout.
	WriteTimeout time.Duration
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		Concurrency:  10,
		WriteTimeout: 10 * time.Second,
	}
}

// WriterMetrics holds metrics for a writer.
type WriterMetrics struct {
	Inserts  int64
	Errors   int64
	InFlight int64
}
