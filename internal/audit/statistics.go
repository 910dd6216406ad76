package audit

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Statistics tracks the engine's lifetime counters. All counters are
// monotonic; Reset is deliberately absent so totals survive restarts of the
// monitor loop within one process.
type Statistics struct {
	mu              sync.Mutex
	filesProcessed  int64
	filesMoved      int64
	duplicatesFound int64
	quarantined     int64
	errors          int64
}

// Report is an immutable counter snapshot plus the on-disk per-category
// population at snapshot time.
type Report struct {
	FilesProcessed  int64            `json:"files_processed"`
	FilesMoved      int64            `json:"files_moved"`
	DuplicatesFound int64            `json:"duplicates_found"`
	Quarantined     int64            `json:"quarantined"`
	Errors          int64            `json:"errors"`
	CategoryCounts  map[string]int64 `json:"category_counts"`
}

func NewStatistics() *Statistics {
	return &Statistics{}
}

func (s *Statistics) RecordProcessed() {
	s.mu.Lock()
	s.filesProcessed++
	s.mu.Unlock()
}

func (s *Statistics) RecordMoved() {
	s.mu.Lock()
	s.filesMoved++
	s.mu.Unlock()
}

func (s *Statistics) RecordDuplicate() {
	s.mu.Lock()
	s.duplicatesFound++
	s.mu.Unlock()
}

func (s *Statistics) RecordQuarantined() {
	s.mu.Lock()
	s.quarantined++
	s.mu.Unlock()
}

func (s *Statistics) RecordError() {
	s.mu.Lock()
	s.errors++
	s.mu.Unlock()
}

// Snapshot returns the current counters. When targetBase is non-empty the
// report also includes a live count of files per top-level category
// directory, derived from the tree rather than the counters so it reflects
// manual cleanup too.
func (s *Statistics) Snapshot(targetBase string) Report {
	s.mu.Lock()
	report := Report{
		FilesProcessed:  s.filesProcessed,
		FilesMoved:      s.filesMoved,
		DuplicatesFound: s.duplicatesFound,
		Quarantined:     s.quarantined,
		Errors:          s.errors,
	}
	s.mu.Unlock()

	if targetBase != "" {
		report.CategoryCounts = countByCategory(targetBase)
	}
	return report
}

func countByCategory(targetBase string) map[string]int64 {
	counts := make(map[string]int64)
	entries, err := os.ReadDir(targetBase)
	if err != nil {
		return counts
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		var n int64
		_ = filepath.WalkDir(filepath.Join(targetBase, entry.Name()), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() {
				n++
			}
			return nil
		})
		counts[entry.Name()] = n
	}
	return counts
}
