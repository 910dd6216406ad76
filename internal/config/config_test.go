package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curator/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("resolved path mismatch: %q", resolved)
	}
	if cfg.Engine.ScanIntervalSeconds != 5 {
		t.Fatalf("unexpected default scan interval: %d", cfg.Engine.ScanIntervalSeconds)
	}
	if cfg.Engine.MaxClassifyBytes != 1<<20 {
		t.Fatalf("unexpected default classify ceiling: %d", cfg.Engine.MaxClassifyBytes)
	}
	if !filepath.IsAbs(cfg.Paths.SourceDir) {
		t.Fatalf("source dir not absolute: %q", cfg.Paths.SourceDir)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
source_dir = "` + filepath.Join(dir, "in") + `"
target_dir = "` + filepath.Join(dir, "out") + `"

[engine]
scan_interval_seconds = 2
watch_backend = "FSNOTIFY"

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Engine.WatchBackend != config.WatchBackendNotify {
		t.Fatalf("watch backend not normalized: %q", cfg.Engine.WatchBackend)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
	if cfg.ScanInterval().Seconds() != 2 {
		t.Fatalf("unexpected scan interval: %v", cfg.ScanInterval())
	}
}

func TestValidateRejectsSameSourceAndTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
source_dir = "` + dir + `"
target_dir = "` + dir + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !config.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "must differ") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[engine]
watch_backend = "inotifywait"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

func TestEnsureDirectoriesCreatesTree(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(dir, "in")
	cfg.Paths.TargetDir = filepath.Join(dir, "out")
	cfg.Paths.QuarantineDir = filepath.Join(dir, "quarantine")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, p := range []string{cfg.Paths.SourceDir, cfg.Paths.TargetDir, cfg.Paths.QuarantineDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", p, err)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config should load cleanly: exists=%v err=%v", exists, err)
	}
}
