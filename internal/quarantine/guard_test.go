package quarantine_test

import (
	"os"
	"path/filepath"
	"testing"

	"curator/internal/quarantine"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAssessRiskSuspiciousExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"installer.scr", "loader.pif", "macro.vbs", "run.bat", "run.cmd", "legacy.com"} {
		path := writeFile(t, dir, name, []byte("whatever"))
		flagged, reason := quarantine.AssessRisk(path)
		if !flagged {
			t.Fatalf("%s should be flagged", name)
		}
		if reason == "" {
			t.Fatalf("%s flagged without reason", name)
		}
	}
}

func TestAssessRiskSuspiciousFilename(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"autorun.inf", "desktop.ini", "Thumbs.db"} {
		path := writeFile(t, dir, name, []byte("x"))
		if flagged, _ := quarantine.AssessRisk(path); !flagged {
			t.Fatalf("%s should be flagged", name)
		}
	}
}

func TestAssessRiskDisguisedExecutable(t *testing.T) {
	dir := t.TempDir()

	evil := writeFile(t, dir, "evil.pdf", []byte("MZ\x90\x00 payload"))
	flagged, reason := quarantine.AssessRisk(evil)
	if !flagged {
		t.Fatal("MZ header behind .pdf should be flagged")
	}
	if reason == "" {
		t.Fatal("expected a reason")
	}

	clean := writeFile(t, dir, "report.pdf", []byte("%PDF-1.4 body"))
	if flagged, _ := quarantine.AssessRisk(clean); flagged {
		t.Fatal("genuine PDF should pass")
	}

	// An actual executable with an honest extension is not a disguise.
	honest := writeFile(t, dir, "tool.exe", []byte("MZ\x90\x00"))
	if flagged, _ := quarantine.AssessRisk(honest); flagged {
		t.Fatal(".exe with MZ header is not disguised")
	}
}

func TestAssessRiskPlainFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"notes.txt", "photo.jpg", "archive.zip"} {
		path := writeFile(t, dir, name, []byte("benign content"))
		if flagged, reason := quarantine.AssessRisk(path); flagged {
			t.Fatalf("%s wrongly flagged: %s", name, reason)
		}
	}
}
