// Package monitor watches the source directory and hands newly settled
// files to the engine. Two backends exist: a portable snapshot-diff poller
// and an fsnotify-based watcher for filesystems with native events.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"curator/internal/logging"
)

// Source produces paths of files that are ready to process. Run blocks
// until ctx is done, calling emit for each discovered file.
type Source interface {
	Run(ctx context.Context, emit func(path string)) error
}

// Monitor drives a Source on a background goroutine.
type Monitor struct {
	source Source
	emit   func(path string)
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a monitor that forwards discovered paths to emit.
func New(source Source, emit func(path string), logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Monitor{
		source: source,
		emit:   emit,
		logger: logger.With(logging.String(logging.FieldComponent, "monitor")),
	}
}

// Start launches the watch loop. Starting an already running monitor is an
// error.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return errors.New("monitor already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.ctx = runCtx
	m.cancel = cancel
	m.running = true

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.source.Run(runCtx, m.emit); err != nil && !errors.Is(err, context.Canceled) {
			m.logger.Error("watch loop exited", logging.Error(err))
		}
		// A backend that dies on its own must not keep reporting an
		// active watch.
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()
	return nil
}

// Stop cancels the watch loop and waits for it to return. Stopping a
// stopped monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// Running reports whether the watch loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
