package monitor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fileState is what must hold steady across two scans before a file is
// considered settled and safe to hand off.
type fileState struct {
	size    int64
	modTime time.Time
}

// PollSource discovers files by diffing directory snapshots on a fixed
// interval. A file is emitted once its size and modification time are
// unchanged between two consecutive scans, so half-copied files are left
// alone until the writer finishes.
type PollSource struct {
	dir      string
	interval time.Duration

	pending map[string]fileState
	emitted map[string]struct{}
}

func NewPollSource(dir string, interval time.Duration) *PollSource {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PollSource{
		dir:      dir,
		interval: interval,
		pending:  make(map[string]fileState),
		emitted:  make(map[string]struct{}),
	}
}

// Run scans immediately, then on every tick, until ctx is done.
func (p *PollSource) Run(ctx context.Context, emit func(path string)) error {
	p.scan(emit)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.scan(emit)
		}
	}
}

func (p *PollSource) scan(emit func(path string)) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || skipName(entry.Name()) {
			continue
		}
		path := filepath.Join(p.dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		seen[path] = struct{}{}

		if _, done := p.emitted[path]; done {
			continue
		}
		state := fileState{size: info.Size(), modTime: info.ModTime()}
		if prev, ok := p.pending[path]; ok && prev == state {
			delete(p.pending, path)
			p.emitted[path] = struct{}{}
			emit(path)
			continue
		}
		p.pending[path] = state
	}

	// Forget files that vanished so a recreated name is picked up again.
	for path := range p.pending {
		if _, ok := seen[path]; !ok {
			delete(p.pending, path)
		}
	}
	for path := range p.emitted {
		if _, ok := seen[path]; !ok {
			delete(p.emitted, path)
		}
	}
}

// skipName filters dotfiles and common in-progress download suffixes.
func skipName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".part", ".crdownload", ".download", ".partial":
		return true
	}
	return false
}
