package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path with the given content, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSource drops a file with the given name and content into the
// configured source directory and returns its path.
func WriteSource(t testing.TB, sourceDir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(sourceDir, name)
	WriteFile(t, path, content)
	return path
}
