package dedup

import (
	"os"
	"path/filepath"
	"testing"

	"curator/internal/fingerprint"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCacheFirstWriteWins(t *testing.T) {
	cache := NewCache()
	dir := t.TempDir()
	first := writeFile(t, dir, "first.txt", "same content")
	second := writeFile(t, dir, "second.txt", "same content")

	digest, err := fingerprint.Digest(first)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Lookup(digest); ok {
		t.Fatal("empty cache reported a hit")
	}
	cache.Commit(digest, first)
	cache.Commit(digest, second)

	canonical, ok := cache.Lookup(digest)
	if !ok {
		t.Fatal("expected hit after commit")
	}
	if canonical != first {
		t.Errorf("canonical = %q, want %q", canonical, first)
	}
}

func TestCacheEvictsStaleEntries(t *testing.T) {
	cache := NewCache()
	dir := t.TempDir()
	path := writeFile(t, dir, "gone.txt", "ephemeral")
	cache.Commit("abc123", path)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Lookup("abc123"); ok {
		t.Error("stale entry not evicted")
	}
	if cache.Len() != 0 {
		t.Errorf("Len = %d after eviction, want 0", cache.Len())
	}
}

func TestCacheSeed(t *testing.T) {
	cache := NewCache()
	tree := t.TempDir()
	a := writeFile(t, tree, "Documents/PDFs/report.pdf", "pdf bytes")
	writeFile(t, tree, "Media/Images/photo.png", "png bytes")

	seeded, err := cache.Seed(tree)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if seeded != 2 {
		t.Errorf("seeded = %d, want 2", seeded)
	}

	digest, err := fingerprint.Digest(a)
	if err != nil {
		t.Fatal(err)
	}
	canonical, ok := cache.Lookup(digest)
	if !ok || canonical != a {
		t.Errorf("seeded lookup = %q, %v; want %q, true", canonical, ok, a)
	}
}

func TestCacheSeedMissingRoot(t *testing.T) {
	cache := NewCache()
	seeded, err := cache.Seed(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Seed on missing root: %v", err)
	}
	if seeded != 0 {
		t.Errorf("seeded = %d, want 0", seeded)
	}
}
