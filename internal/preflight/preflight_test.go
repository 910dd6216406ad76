package preflight

import (
	"path/filepath"
	"testing"

	"curator/internal/testsupport"
)

func TestRunAllPassesOnProvisionedConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	results := RunAll(cfg)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if !AllPassed(results) {
		t.Errorf("expected all checks to pass: %+v", results)
	}
}

func TestCheckSourceReadableMissing(t *testing.T) {
	result := CheckSourceReadable("Source directory", filepath.Join(t.TempDir(), "absent"))
	if result.Passed {
		t.Error("missing directory should fail")
	}
}

func TestCheckDirectoryWritableCreatesMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "target")
	result := CheckDirectoryWritable("Target directory", path)
	if !result.Passed {
		t.Errorf("expected creatable directory to pass: %+v", result)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	result := CheckFreeSpace("Target free space", t.TempDir())
	if !result.Passed {
		t.Errorf("temp dir should have free space: %+v", result)
	}
}
