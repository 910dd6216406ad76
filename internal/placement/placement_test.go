package placement

import (
	"os"
	"path/filepath"
	"testing"

	"curator/internal/classify"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlaceCreatesCategoryDir(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	mover := NewMover(target)
	path := writeFile(t, source, "report.pdf", "pdf bytes")

	dest, err := mover.Place(path, classify.Result{Category: classify.CategoryDocuments, Subcategory: "PDFs"})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	want := filepath.Join(target, "Documents", "PDFs", "report.pdf")
	if dest != want {
		t.Errorf("dest = %q, want %q", dest, want)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("moved file missing: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("source still present after move")
	}
}

func TestPlaceCollisionSuffixing(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	mover := NewMover(target)
	result := classify.Result{Category: classify.CategoryDocuments, Subcategory: "Text"}

	var dests []string
	for i, content := range []string{"one", "two", "three"} {
		path := writeFile(t, source, "notes.txt", content)
		dest, err := mover.Place(path, result)
		if err != nil {
			t.Fatalf("Place %d: %v", i, err)
		}
		dests = append(dests, dest)
	}

	wantNames := []string{"notes.txt", "notes_1.txt", "notes_2.txt"}
	for i, dest := range dests {
		if filepath.Base(dest) != wantNames[i] {
			t.Errorf("dest[%d] = %q, want %q", i, filepath.Base(dest), wantNames[i])
		}
	}
	for i, dest := range dests {
		data, err := os.ReadFile(dest)
		if err != nil {
			t.Fatalf("read %s: %v", dest, err)
		}
		want := []string{"one", "two", "three"}[i]
		if string(data) != want {
			t.Errorf("%s content = %q, want %q", dest, data, want)
		}
	}
}

func TestPlaceExtensionlessCollision(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	mover := NewMover(target)
	result := classify.Result{Category: classify.CategoryUnknown}

	for i := 0; i < 2; i++ {
		path := writeFile(t, source, "README", "readme")
		if _, err := mover.Place(path, result); err != nil {
			t.Fatalf("Place: %v", err)
		}
	}
	if _, err := os.Stat(filepath.Join(target, "Unknown", "README_1")); err != nil {
		t.Errorf("expected README_1: %v", err)
	}
}

func TestPlaceUnknownHasNoSubdirectory(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	path := writeFile(t, source, "blob.bin", "data")

	dest, err := NewMover(target).Place(path, classify.Unknown)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if dest != filepath.Join(target, "Unknown", "blob.bin") {
		t.Errorf("dest = %q", dest)
	}
}

func TestPlaceDynamicSubcategory(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	path := writeFile(t, source, "main.rs", "fn main() {}")

	dest, err := NewMover(target).Place(path, classify.Result{Category: classify.CategoryCode, Subcategory: "Rust"})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if dest != filepath.Join(target, "Code", "Rust", "main.rs") {
		t.Errorf("dest = %q", dest)
	}
}
