package monitor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) emit(path string) {
	c.mu.Lock()
	c.paths = append(c.paths, path)
	c.mu.Unlock()
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPollSourceEmitsSettledFilesOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stable.txt", "content")
	source := NewPollSource(dir, time.Second)
	var c collector

	source.scan(c.emit)
	if len(c.snapshot()) != 0 {
		t.Fatal("file emitted before it settled")
	}
	source.scan(c.emit)
	got := c.snapshot()
	if len(got) != 1 || got[0] != path {
		t.Fatalf("expected one emission of %q, got %v", path, got)
	}
	source.scan(c.emit)
	if len(c.snapshot()) != 1 {
		t.Error("settled file emitted twice")
	}
}

func TestPollSourceWaitsForGrowingFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "growing.bin", "partial")
	source := NewPollSource(dir, time.Second)
	var c collector

	source.scan(c.emit)
	if err := os.WriteFile(path, []byte("partial plus more"), 0o644); err != nil {
		t.Fatal(err)
	}
	source.scan(c.emit)
	if len(c.snapshot()) != 0 {
		t.Fatal("growing file emitted early")
	}
	source.scan(c.emit)
	if len(c.snapshot()) != 1 {
		t.Error("file not emitted after settling")
	}
}

func TestPollSourceSkipsHiddenAndPartialFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".hidden", "x")
	writeFile(t, dir, "movie.mkv.part", "x")
	writeFile(t, dir, "real.txt", "x")
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	source := NewPollSource(dir, time.Second)
	var c collector

	source.scan(c.emit)
	source.scan(c.emit)
	got := c.snapshot()
	if len(got) != 1 || filepath.Base(got[0]) != "real.txt" {
		t.Errorf("expected only real.txt, got %v", got)
	}
}

func TestPollSourceRediscoversRecreatedName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "repeat.txt", "first")
	source := NewPollSource(dir, time.Second)
	var c collector

	source.scan(c.emit)
	source.scan(c.emit)
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	source.scan(c.emit)

	writeFile(t, dir, "repeat.txt", "second")
	source.scan(c.emit)
	source.scan(c.emit)
	if len(c.snapshot()) != 2 {
		t.Errorf("expected recreated name re-emitted, got %v", c.snapshot())
	}
}

type stubSource struct {
	paths []string
}

func (s *stubSource) Run(ctx context.Context, emit func(string)) error {
	for _, p := range s.paths {
		emit(p)
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestMonitorStartStop(t *testing.T) {
	var c collector
	m := New(&stubSource{paths: []string{"/a", "/b"}}, c.emit, nil)

	if m.Running() {
		t.Fatal("monitor running before Start")
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}
	if !m.Running() {
		t.Error("monitor not running after Start")
	}

	deadline := time.Now().Add(time.Second)
	for len(c.snapshot()) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := c.snapshot(); len(got) != 2 {
		t.Errorf("expected 2 emissions, got %v", got)
	}

	m.Stop()
	if m.Running() {
		t.Error("monitor still running after Stop")
	}
	m.Stop() // idempotent
}

type failingSource struct {
	err error
}

func (s *failingSource) Run(ctx context.Context, emit func(string)) error {
	return s.err
}

func TestMonitorClearsRunningWhenSourceFails(t *testing.T) {
	m := New(&failingSource{err: errors.New("watcher lost")}, func(string) {}, nil)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for m.Running() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if m.Running() {
		t.Error("monitor still reports running after its source exited")
	}

	m.Stop()
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("restart after source failure: %v", err)
	}
	m.Stop()
}
