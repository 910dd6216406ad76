// Package dedup keeps the digest-to-canonical-path index used to detect
// byte-identical files before they are placed.
package dedup

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"curator/internal/fingerprint"
)

// Cache maps content digests to the first placed path seen for that digest.
// First write wins; later identical content is reported as a duplicate of
// the canonical path.
type Cache struct {
	mu    sync.Mutex
	paths map[string]string
}

func NewCache() *Cache {
	return &Cache{paths: make(map[string]string)}
}

// Lookup reports the canonical path for digest, if any. A stale entry whose
// file no longer exists on disk is evicted and reported as absent, so a
// manually deleted original does not block re-sorting its content.
func (c *Cache) Lookup(digest string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	canonical, ok := c.paths[digest]
	if !ok {
		return "", false
	}
	if _, err := os.Stat(canonical); err != nil {
		delete(c.paths, digest)
		return "", false
	}
	return canonical, true
}

// Commit records path as the canonical location for digest. An existing
// entry is never overwritten.
func (c *Cache) Commit(digest, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.paths[digest]; !ok {
		c.paths[digest] = path
	}
}

// Len returns the number of tracked digests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.paths)
}

// Seed walks an existing organized tree and registers every regular file,
// so a restarted process still recognizes duplicates of already-placed
// content. Unreadable files are skipped.
func (c *Cache) Seed(root string) (int, error) {
	seeded := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		digest, err := fingerprint.Digest(path)
		if err != nil {
			return nil
		}
		c.mu.Lock()
		if _, ok := c.paths[digest]; !ok {
			c.paths[digest] = path
			seeded++
		}
		c.mu.Unlock()
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return seeded, err
	}
	return seeded, nil
}
