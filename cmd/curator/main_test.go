package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig drops a minimal TOML config pointing every path at the
// test's temp tree and returns its path.
func writeTestConfig(t *testing.T, base string) string {
	t.Helper()

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
source_dir = %q
target_dir = %q
quarantine_dir = %q
log_dir = %q

[engine]
scan_interval_seconds = 1

[logging]
level = "error"
format = "json"
`,
		filepath.Join(base, "incoming"),
		filepath.Join(base, "sorted"),
		filepath.Join(base, "quarantine"),
		filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(base, "incoming"), 0o755); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSortCommandSortsAndSummarizes(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	if err := os.WriteFile(filepath.Join(base, "incoming", "deck.pptx"), []byte("slides"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", configPath, "sort")
	if err != nil {
		t.Fatalf("sort: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 moved") {
		t.Errorf("summary missing move count:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(base, "sorted", "Documents", "Presentations", "deck.pptx")); err != nil {
		t.Errorf("file not placed: %v", err)
	}
}

func TestSortCommandJSONOutput(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	if err := os.WriteFile(filepath.Join(base, "incoming", "data.csv"), []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", configPath, "sort", "--json")
	if err != nil {
		t.Fatalf("sort --json: %v\n%s", err, out)
	}
	if !strings.Contains(out, "\"Processed\": 1") {
		t.Errorf("unexpected JSON output:\n%s", out)
	}
}

func TestStatusCommand(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, err := runCommand(t, "--config", configPath, "status")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	for _, want := range []string{"Source directory", "Target directory", "OK"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestQuarantineListAndRestore(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	if err := os.WriteFile(filepath.Join(base, "incoming", "setup.scr"), []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	if out, err := runCommand(t, "--config", configPath, "sort"); err != nil {
		t.Fatalf("sort: %v\n%s", err, out)
	}

	out, err := runCommand(t, "--config", configPath, "quarantine", "list")
	if err != nil {
		t.Fatalf("quarantine list: %v\n%s", err, out)
	}
	if !strings.Contains(out, "setup.scr") {
		t.Fatalf("quarantined file not listed:\n%s", out)
	}

	entries, err := os.ReadDir(filepath.Join(base, "quarantine"))
	if err != nil {
		t.Fatal(err)
	}
	var quarantined string
	for _, entry := range entries {
		if entry.Name() != "quarantine_log.json" {
			quarantined = entry.Name()
		}
	}
	if quarantined == "" {
		t.Fatal("no quarantined file on disk")
	}

	out, err = runCommand(t, "--config", configPath, "quarantine", "restore", quarantined)
	if err != nil {
		t.Fatalf("quarantine restore: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(base, "incoming", "setup.scr")); err != nil {
		t.Errorf("file not restored: %v", err)
	}
}

func TestHistoryCommand(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	if err := os.WriteFile(filepath.Join(base, "incoming", "photo.jpg"), []byte("\xff\xd8\xff\xe0 jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	if out, err := runCommand(t, "--config", configPath, "sort"); err != nil {
		t.Fatalf("sort: %v\n%s", err, out)
	}
	out, err := runCommand(t, "--config", configPath, "history")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	if !strings.Contains(out, "photo.jpg") || !strings.Contains(out, "moved") {
		t.Errorf("history missing record:\n%s", out)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Error("second init without --overwrite should fail")
	}
	if out, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Errorf("init --overwrite: %v\n%s", err, out)
	}
}

func TestConfigShowCommand(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, err := runCommand(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, out)
	}
	if !strings.Contains(out, "paths.source_dir") || !strings.Contains(out, filepath.Join(base, "incoming")) {
		t.Errorf("config show missing values:\n%s", out)
	}
}

func TestConfigValidateRejectsBadBackend(t *testing.T) {
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := `[engine]
watch_backend = "inotifywait"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "--config", configPath, "config", "validate"); err == nil {
		t.Error("expected validation failure for unknown watch backend")
	}
}
