// Package engine owns the per-file pipeline and the public operations the
// CLI drives: monitoring, one-shot sorting, statistics, and quarantine
// restore. All mutable pipeline state (digest cache, counters, log writers)
// is confined to a single worker.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"curator/internal/audit"
	"curator/internal/classify"
	"curator/internal/config"
	"curator/internal/dedup"
	"curator/internal/ledger"
	"curator/internal/logging"
	"curator/internal/monitor"
	"curator/internal/placement"
	"curator/internal/quarantine"
)

// Engine wires the pipeline stages together around one configuration.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger

	classifier *classify.Classifier
	cache      *dedup.Cache
	stats      *audit.Statistics
	moveLog    *audit.Log
	vault      *quarantine.Vault
	mover      *placement.Mover
	store      *ledger.Store

	// pipelineMu serializes all per-file processing: the monitor worker and
	// synchronous SortDirectory calls never run the pipeline concurrently.
	pipelineMu sync.Mutex

	mu      sync.Mutex
	mon     *monitor.Monitor
	queue   chan string
	workCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option customizes engine construction.
type Option func(*Engine)

// WithContentClassifier injects an optional content-classification strategy
// consulted when the built-in heuristics are inconclusive.
func WithContentClassifier(cc classify.ContentClassifier) Option {
	return func(e *Engine) {
		e.classifier = classify.New(e.cfg.Engine.MaxClassifyBytes,
			classify.WithContentClassifier(cc),
			classify.WithLogger(e.logger))
	}
}

// WithLedger attaches a persistent outcome store. Without it outcomes are
// only visible in the JSONL logs.
func WithLedger(store *ledger.Store) Option {
	return func(e *Engine) { e.store = store }
}

// New validates the directory layout eagerly and builds an engine. Layout
// failures here are fatal; per-file problems later never are.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, Wrap(ErrConfiguration, "startup", "ensure directories", "", err)
	}
	if err := classify.EnsureTree(cfg.Paths.TargetDir); err != nil {
		return nil, Wrap(ErrConfiguration, "startup", "create category tree", "", err)
	}

	e := &Engine{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "engine"),
		classifier: classify.New(cfg.Engine.MaxClassifyBytes, classify.WithLogger(logger)),
		cache:      dedup.NewCache(),
		stats:      audit.NewStatistics(),
		moveLog:    audit.NewLog(cfg.Paths.TargetDir),
		vault:      quarantine.NewVault(cfg.Paths.QuarantineDir, cfg.Paths.SourceDir, logger),
		mover:      placement.NewMover(cfg.Paths.TargetDir),
	}
	for _, opt := range opts {
		opt(e)
	}

	if cfg.Engine.SeedDigestCache {
		seeded, err := e.cache.Seed(cfg.Paths.TargetDir)
		if err != nil {
			e.logger.Warn("digest cache seed incomplete", logging.Error(err))
		} else if seeded > 0 {
			e.logger.Info("digest cache seeded", logging.Int("files", seeded))
		}
	}
	return e, nil
}

// StartMonitoring launches the watch loop and its worker. Calling it while
// already monitoring is a no-op.
func (e *Engine) StartMonitoring(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mon != nil && e.mon.Running() {
		return nil
	}

	capacity := e.cfg.Engine.QueueCapacity
	if capacity <= 0 {
		capacity = 256
	}
	runCtx, cancel := context.WithCancel(ctx)
	e.workCtx = runCtx
	e.cancel = cancel
	e.queue = make(chan string, capacity)

	e.wg.Add(1)
	go e.worker(runCtx, e.queue)

	source := e.newSource()
	e.mon = monitor.New(source, e.enqueueFunc(runCtx, e.queue), e.logger)
	if err := e.mon.Start(runCtx); err != nil {
		cancel()
		e.wg.Wait()
		e.mon = nil
		return Wrap(ErrConfiguration, "monitor", "start", "", err)
	}

	e.logger.Info("monitoring started",
		logging.String("source_dir", e.cfg.Paths.SourceDir),
		logging.String("backend", e.cfg.Engine.WatchBackend),
		logging.Duration("interval", e.cfg.ScanInterval()))
	return nil
}

// StopMonitoring cancels the watch loop and waits for the worker to finish
// its current file. Stopping when not monitoring is a no-op.
func (e *Engine) StopMonitoring() {
	e.mu.Lock()
	mon := e.mon
	cancel := e.cancel
	e.mon = nil
	e.cancel = nil
	e.mu.Unlock()

	if mon == nil {
		return
	}
	mon.Stop()
	if cancel != nil {
		cancel()
	}
	e.wg.Wait()
	e.logger.Info("monitoring stopped")
}

// Monitoring reports whether the watch loop is active.
func (e *Engine) Monitoring() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mon != nil && e.mon.Running()
}

func (e *Engine) newSource() monitor.Source {
	if e.cfg.Engine.WatchBackend == config.WatchBackendNotify {
		return monitor.NewNotifySource(e.cfg.Paths.SourceDir)
	}
	return monitor.NewPollSource(e.cfg.Paths.SourceDir, e.cfg.ScanInterval())
}

// enqueueFunc blocks when the queue is full so discovery backpressure never
// drops a file; cancellation unblocks it.
func (e *Engine) enqueueFunc(ctx context.Context, queue chan string) func(string) {
	return func(path string) {
		select {
		case queue <- path:
		case <-ctx.Done():
		}
	}
}

func (e *Engine) worker(ctx context.Context, queue chan string) {
	defer e.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-queue:
			// The file in flight runs to completion even during shutdown;
			// a half-moved file is worse than a slow stop.
			e.processFile(context.WithoutCancel(ctx), path)
		}
	}
}

// Report is the engine status snapshot returned by GetStatistics.
type Report struct {
	MonitoringActive    bool             `json:"monitoring_active"`
	FilesProcessed      int64            `json:"files_processed"`
	FilesMoved          int64            `json:"files_moved"`
	DuplicatesFound     int64            `json:"duplicates_found"`
	Quarantined         int64            `json:"quarantined"`
	Errors              int64            `json:"errors"`
	CategoryCounts      map[string]int64 `json:"category_counts"`
	QuarantineFileCount int              `json:"quarantine_file_count"`
	CacheSize           int              `json:"cache_size"`
}

// GetStatistics returns the lifetime counters plus live tree and cache
// sizes. It never fails; unreadable directories yield zero counts.
func (e *Engine) GetStatistics() Report {
	snapshot := e.stats.Snapshot(e.cfg.Paths.TargetDir)
	return Report{
		MonitoringActive:    e.Monitoring(),
		FilesProcessed:      snapshot.FilesProcessed,
		FilesMoved:          snapshot.FilesMoved,
		DuplicatesFound:     snapshot.DuplicatesFound,
		Quarantined:         snapshot.Quarantined,
		Errors:              snapshot.Errors,
		CategoryCounts:      snapshot.CategoryCounts,
		QuarantineFileCount: e.vault.FileCount(),
		CacheSize:           e.cache.Len(),
	}
}

// RestoreFromQuarantine moves a quarantined file back to the source
// directory under its original name and consumes its log entry.
func (e *Engine) RestoreFromQuarantine(quarantineFilename string) (string, error) {
	e.pipelineMu.Lock()
	defer e.pipelineMu.Unlock()

	restored, err := e.vault.Restore(quarantineFilename)
	if err != nil {
		if errors.Is(err, quarantine.ErrNoEntry) {
			return "", Wrap(ErrNotFound, "quarantine", "restore", quarantineFilename, err)
		}
		return "", Wrap(ErrIO, "quarantine", "restore", quarantineFilename, err)
	}
	if e.store != nil {
		if _, err := e.store.Append(context.Background(), &ledger.Record{
			SourcePath:  quarantineFilename,
			Status:      ledger.StatusMoved,
			Destination: restored,
			Detail:      "restored from quarantine",
		}); err != nil {
			e.logger.Warn("ledger append failed", logging.Error(err))
		}
	}
	e.logger.Info("restored from quarantine",
		logging.String(logging.FieldPath, restored))
	return restored, nil
}

// QuarantineEntries lists the current quarantine log.
func (e *Engine) QuarantineEntries() ([]quarantine.Entry, error) {
	return e.vault.Entries()
}
