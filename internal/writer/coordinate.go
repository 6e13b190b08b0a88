package writer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/rickgao/cursorlog/internal/model"
)

// CoordinateWriter persists validated coordinate events one transaction at a time.
type CoordinateWriter struct {
	cfg      WriterConfig
	logger   *slog.Logger
	store    Store
	observer Observer

	// Bounded concurrency for inserts
	slots *semaphore.Weighted

	// Lifecycle
	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup

	// Metrics
	metricsMu sync.Mutex
	metrics   WriterMetrics
}

// Option configures a CoordinateWriter.
type Option func(*CoordinateWriter)

// WithObserver reports every insert outcome to o.
func WithObserver(o Observer) Option {
	return func(w *CoordinateWriter) {
		w.observer = o
	}
}

// NewCoordinateWriter creates a new CoordinateWriter.
func NewCoordinateWriter(cfg WriterConfig, store Store, logger *slog.Logger, opts ...Option) *CoordinateWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	w := &CoordinateWriter{
		cfg:    cfg,
		logger: logger,
		store:  store,
		slots:  semaphore.NewWeighted(int64(cfg.Concurrency)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write persists ev and blocks until the insert finished or ctx is done.
//
// ctx only governs waiting. Once an insert has been dispatched it runs to completion on
// its own context, even if the caller goes away; its outcome is then only logged.
// Every failure is reported as ErrPersistence.
func (w *CoordinateWriter) Write(ctx context.Context, ev model.CoordinateEvent) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrPersistence, ErrStopped)
	}
	w.wg.Add(1)
	w.mu.Unlock()

	if err := w.slots.Acquire(ctx, 1); err != nil {
		w.wg.Done()
		w.logger.Warn("coordinate write abandoned before dispatch", "error", err)
		return ErrPersistence
	}

	w.addInFlight(1)
	result := make(chan error, 1)
	go func() {
		defer w.wg.Done()
		defer w.slots.Release(1)
		defer w.addInFlight(-1)
		result <- w.insert(ev)
	}()

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ErrPersistence
	}
}

// Stop rejects new writes and waits for in-flight inserts to finish.
func (w *CoordinateWriter) Stop(ctx context.Context) error {
	w.logger.Info("stopping coordinate writer")

	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("coordinate writer stopped")
		return nil
	case <-ctx.Done():
		w.logger.Warn("coordinate writer stop timed out", "in_flight", w.Stats().InFlight)
		return ctx.Err()
	}
}

// Stats returns current metrics.
func (w *CoordinateWriter) Stats() WriterMetrics {
	w.metricsMu.Lock()
	defer w.metricsMu.Unlock()
	return w.metrics
}

// insert runs one store call and folds its outcome into ErrPersistence.
func (w *CoordinateWriter) insert(ev model.CoordinateEvent) error {
	start := time.Now()
	err := w.exec(ev)
	elapsed := time.Since(start)

	if w.observer != nil {
		w.observer.ObserveWrite(elapsed, err)
	}

	w.metricsMu.Lock()
	if err != nil {
		w.metrics.Errors++
	} else {
		w.metrics.Inserts++
	}
	w.metricsMu.Unlock()

	if err != nil {
		w.logger.Error("coordinate insert failed",
			"error", err,
			"duration", elapsed,
		)
		return ErrPersistence
	}

	w.logger.Debug("coordinate inserted",
		"x", ev.X,
		"y", ev.Y,
		"direction", ev.Direction,
		"duration", elapsed,
	)
	return nil
}

// exec calls the store on a detached context. A panicking store counts as a failed write.
func (w *CoordinateWriter) exec(ev model.CoordinateEvent) (err error) {
	ctx := context.Background()
	if w.cfg.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.WriteTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("store panic: %v", r)
		}
	}()

	return w.store.InsertCoordinate(ctx, ev)
}

func (w *CoordinateWriter) addInFlight(n int64) {
	w.metricsMu.Lock()
	w.metrics.InFlight += n
	w.metricsMu.Unlock()
}
