package monitor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// notifySettleDelay is how long a file must stay quiet after its last write
// event before it is handed off.
const notifySettleDelay = 2 * time.Second

// NotifySource discovers files through native filesystem events. Writes are
// debounced: a path is emitted only after it has seen no events for the
// settle delay. Files already present when Run starts are emitted up front.
type NotifySource struct {
	dir    string
	settle time.Duration
}

func NewNotifySource(dir string) *NotifySource {
	return &NotifySource{dir: dir, settle: notifySettleDelay}
}

func (n *NotifySource) Run(ctx context.Context, emit func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(n.dir); err != nil {
		return fmt.Errorf("watch %s: %w", n.dir, err)
	}

	// Pick up anything that landed before the watch was registered.
	if entries, err := os.ReadDir(n.dir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() || skipName(entry.Name()) {
				continue
			}
			emit(filepath.Join(n.dir, entry.Name()))
		}
	}

	lastEvent := make(map[string]time.Time)
	ticker := time.NewTicker(n.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if skipName(filepath.Base(event.Name)) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
				lastEvent[event.Name] = time.Now()
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				delete(lastEvent, event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return fmt.Errorf("watch events: %w", err)
			}
		case now := <-ticker.C:
			for path, stamp := range lastEvent {
				if now.Sub(stamp) < n.settle {
					continue
				}
				delete(lastEvent, path)
				info, err := os.Stat(path)
				if err != nil || info.IsDir() {
					continue
				}
				emit(path)
			}
		}
	}
}
