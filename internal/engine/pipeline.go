package engine

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"curator/internal/fingerprint"
	"curator/internal/ledger"
	"curator/internal/logging"
	"curator/internal/quarantine"
)

// Outcome is the terminal status of one processed file.
type Outcome struct {
	Source      string
	Status      string
	Category    string
	Subcategory string
	Destination string
	Detail      string
	Err         error
}

// Summary aggregates one SortDirectory run. Per-file failures land in
// Outcomes and the Errors counter; only startup problems surface as an
// error from SortDirectory itself.
type Summary struct {
	Processed   int
	Moved       int
	Duplicates  int
	Quarantined int
	Skipped     int
	Errors      int
	Duration    time.Duration
	Outcomes    []Outcome
}

// SortDirectory runs the pipeline once, synchronously, over every file
// currently present in the source directory, in name order.
func (e *Engine) SortDirectory(ctx context.Context) (Summary, error) {
	start := time.Now()
	entries, err := os.ReadDir(e.cfg.Paths.SourceDir)
	if err != nil {
		return Summary{}, Wrap(ErrIO, "sort", "read source dir", e.cfg.Paths.SourceDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	summary := Summary{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		outcome := e.processFile(ctx, filepath.Join(e.cfg.Paths.SourceDir, name))
		summary.Processed++
		summary.Outcomes = append(summary.Outcomes, outcome)
		switch outcome.Status {
		case ledger.StatusMoved:
			summary.Moved++
		case ledger.StatusDuplicate:
			summary.Duplicates++
		case ledger.StatusQuarantined:
			summary.Quarantined++
		case ledger.StatusSkipped:
			summary.Skipped++
		case ledger.StatusError:
			summary.Errors++
		}
	}
	summary.Duration = time.Since(start)
	return summary, nil
}

// processFile drives one file through risk assessment, duplicate check,
// classification, and placement. It always returns a terminal outcome and
// never panics or aborts the batch.
func (e *Engine) processFile(ctx context.Context, path string) Outcome {
	e.pipelineMu.Lock()
	defer e.pipelineMu.Unlock()

	ctx = logging.WithRequestID(logging.WithPath(ctx, path), uuid.NewString())
	logger := logging.WithContext(ctx, e.logger)

	e.stats.RecordProcessed()

	info, err := os.Lstat(path)
	if err != nil {
		// A vanished file is a skip; anything else is a real error.
		return e.finish(ctx, logger, e.failFile(path, "intake", "stat", err))
	}
	if !info.Mode().IsRegular() {
		return e.finish(ctx, logger, Outcome{Source: path, Status: ledger.StatusSkipped, Detail: "not a regular file"})
	}
	size := info.Size()

	if flagged, reason := quarantine.AssessRisk(path); flagged {
		return e.finish(ctx, logger, e.quarantineFile(logger, path, reason))
	}

	digest, err := fingerprint.Digest(path)
	if err != nil {
		return e.finish(ctx, logger, e.failFile(path, "dedup", "digest", err))
	}

	if canonical, dup := e.cache.Lookup(digest); dup {
		e.stats.RecordDuplicate()
		outcome := Outcome{
			Source:      path,
			Status:      ledger.StatusDuplicate,
			Destination: canonical,
			Detail:      "duplicate of " + canonical,
		}
		if err := os.Remove(path); err != nil {
			logger.Warn("duplicate source not removed", logging.Error(err))
			outcome.Detail += " (source left in place)"
		}
		return e.finishWithDigest(ctx, logger, outcome, digest, size)
	}

	result := e.classifier.Classify(ctx, path, size)

	dest, err := e.mover.Place(path, result)
	if err != nil {
		e.stats.RecordError()
		return e.finishWithDigest(ctx, logger, Outcome{
			Source:      path,
			Status:      ledger.StatusError,
			Category:    string(result.Category),
			Subcategory: result.Subcategory,
			Err:         Wrap(ErrIO, "placement", "move", path, err),
		}, digest, size)
	}

	// Register the final destination so later duplicates point at where the
	// file actually landed.
	e.cache.Commit(digest, dest)
	e.stats.RecordMoved()

	if err := e.moveLog.AppendMove(path, dest, string(result.Category), result.Subcategory, size); err != nil {
		logger.Warn("move completed but audit log append failed",
			logging.Error(Wrap(ErrLogWrite, "audit", "append move", path, err)))
	}

	return e.finishWithDigest(ctx, logger, Outcome{
		Source:      path,
		Status:      ledger.StatusMoved,
		Category:    string(result.Category),
		Subcategory: result.Subcategory,
		Destination: dest,
	}, digest, size)
}

// failFile turns a stage failure into a terminal outcome. Files that are
// already gone are tagged ErrNotFound and recorded as skips rather than
// errors.
func (e *Engine) failFile(path, stage, operation string, err error) Outcome {
	marker := ErrIO
	if errors.Is(err, fs.ErrNotExist) {
		marker = ErrNotFound
	}
	wrapped := Wrap(marker, stage, operation, path, err)
	status := failureStatus(wrapped)
	if status == ledger.StatusError {
		e.stats.RecordError()
	}
	return Outcome{Source: path, Status: status, Err: wrapped}
}

func (e *Engine) quarantineFile(logger *slog.Logger, path, reason string) Outcome {
	entry, err := e.vault.Quarantine(path, reason)
	if err != nil {
		if entry.QuarantineFile != "" {
			// File is isolated; only the log line failed.
			e.stats.RecordQuarantined()
			logger.Warn("quarantined but log append failed",
				logging.Error(Wrap(ErrLogWrite, "quarantine", "append entry", path, err)))
			return Outcome{Source: path, Status: ledger.StatusQuarantined, Destination: entry.QuarantineFile, Detail: reason}
		}
		e.stats.RecordError()
		return Outcome{Source: path, Status: ledger.StatusError, Err: Wrap(ErrIO, "quarantine", "isolate", path, err)}
	}
	e.stats.RecordQuarantined()
	return Outcome{Source: path, Status: ledger.StatusQuarantined, Destination: entry.QuarantineFile, Detail: reason}
}

func (e *Engine) finish(ctx context.Context, logger *slog.Logger, outcome Outcome) Outcome {
	return e.finishWithDigest(ctx, logger, outcome, "", 0)
}

// finishWithDigest logs the outcome and mirrors it into the ledger when one
// is attached.
func (e *Engine) finishWithDigest(ctx context.Context, logger *slog.Logger, outcome Outcome, digest string, size int64) Outcome {
	switch outcome.Status {
	case ledger.StatusError:
		logger.Error("file processing failed", logging.Error(outcome.Err))
	case ledger.StatusMoved:
		logger.Info("file sorted",
			logging.String("category", outcome.Category),
			logging.String("subcategory", outcome.Subcategory),
			logging.String("destination", outcome.Destination))
	default:
		logger.Info("file processed",
			logging.String("status", outcome.Status),
			logging.String("detail", outcome.Detail))
	}

	if e.store != nil {
		detail := outcome.Detail
		if outcome.Err != nil {
			detail = outcome.Err.Error()
		}
		if _, err := e.store.Append(ctx, &ledger.Record{
			SourcePath:  outcome.Source,
			Digest:      digest,
			Status:      outcome.Status,
			Category:    outcome.Category,
			Subcategory: outcome.Subcategory,
			Destination: outcome.Destination,
			Detail:      detail,
			FileSize:    size,
		}); err != nil {
			logger.Warn("ledger append failed", logging.Error(err))
		}
	}
	return outcome
}
