package quarantine_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curator/internal/quarantine"
)

func newVault(t *testing.T) (*quarantine.Vault, string, string) {
	t.Helper()
	base := t.TempDir()
	source := filepath.Join(base, "source")
	qdir := filepath.Join(base, "quarantine")
	for _, d := range []string{source, qdir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return quarantine.NewVault(qdir, source, nil), source, qdir
}

func TestQuarantineMovesAndLogs(t *testing.T) {
	vault, source, qdir := newVault(t)
	path := writeFile(t, source, "run.bat", []byte("@echo off"))

	entry, err := vault.Quarantine(path, "suspicious extension .bat")
	if err != nil {
		t.Fatalf("Quarantine failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("source file should be gone")
	}
	if !strings.HasSuffix(entry.QuarantineFile, "_run.bat") {
		t.Fatalf("expected timestamp prefix, got %q", entry.QuarantineFile)
	}
	if _, err := os.Stat(filepath.Join(qdir, entry.QuarantineFile)); err != nil {
		t.Fatalf("quarantined file missing: %v", err)
	}

	entries, err := vault.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Reason != "suspicious extension .bat" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if vault.FileCount() != 1 {
		t.Fatalf("expected FileCount 1, got %d", vault.FileCount())
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	vault, source, _ := newVault(t)
	content := []byte("MZ pretend payload")
	path := writeFile(t, source, "evil.pdf", content)

	entry, err := vault.Quarantine(path, "executable header behind .pdf extension")
	if err != nil {
		t.Fatal(err)
	}

	restored, err := vault.Restore(entry.QuarantineFile)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored != filepath.Join(source, "evil.pdf") {
		t.Fatalf("unexpected restore path %q", restored)
	}

	got, err := os.ReadFile(restored)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatal("restored content differs from original")
	}

	entries, err := vault.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("entry should be consumed by restore, got %+v", entries)
	}
}

func TestRestorePreservesNewerSameNameFile(t *testing.T) {
	vault, source, _ := newVault(t)
	original := []byte("MZ original payload")
	path := writeFile(t, source, "report.doc", original)

	entry, err := vault.Quarantine(path, "executable header behind .doc extension")
	if err != nil {
		t.Fatal(err)
	}

	// A new, unrelated file shows up under the same name before restore.
	newcomer := []byte("fresh arrival")
	writeFile(t, source, "report.doc", newcomer)

	restored, err := vault.Restore(entry.QuarantineFile)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored == filepath.Join(source, "report.doc") {
		t.Fatal("restore reused the occupied name")
	}
	if restored != filepath.Join(source, "report_1.doc") {
		t.Fatalf("unexpected restore path %q", restored)
	}

	got, err := os.ReadFile(filepath.Join(source, "report.doc"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(newcomer) {
		t.Fatal("newer file was overwritten by restore")
	}
	got, err = os.ReadFile(restored)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(original) {
		t.Fatal("restored content differs from quarantined original")
	}
}

func TestRestoreUnknownFile(t *testing.T) {
	vault, _, _ := newVault(t)
	if _, err := vault.Restore("20260101000000_ghost.bin"); !errors.Is(err, quarantine.ErrNoEntry) {
		t.Fatalf("expected ErrNoEntry, got %v", err)
	}
}

func TestQuarantineNameCollision(t *testing.T) {
	vault, source, qdir := newVault(t)

	first := writeFile(t, source, "autorun.inf", []byte("one"))
	entry1, err := vault.Quarantine(first, "suspicious filename autorun.inf")
	if err != nil {
		t.Fatal(err)
	}

	second := writeFile(t, source, "autorun.inf", []byte("two"))
	entry2, err := vault.Quarantine(second, "suspicious filename autorun.inf")
	if err != nil {
		t.Fatal(err)
	}

	if entry1.QuarantineFile == entry2.QuarantineFile {
		t.Fatalf("colliding quarantine names: %q", entry1.QuarantineFile)
	}
	dirents, err := os.ReadDir(qdir)
	if err != nil {
		t.Fatal(err)
	}
	files := 0
	for _, d := range dirents {
		if !d.IsDir() && d.Name() != quarantine.LogFilename {
			files++
		}
	}
	if files != 2 {
		t.Fatalf("expected both files preserved, found %d", files)
	}
}
