// Package placement moves classified files into the organized tree without
// ever overwriting existing content.
package placement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"curator/internal/classify"
	"curator/internal/fileutil"
)

// maxCollisionSuffix bounds the free-name scan so a pathological directory
// cannot spin the worker forever.
const maxCollisionSuffix = 10000

// Mover places files under a target base following the category layout.
type Mover struct {
	targetBase string
}

func NewMover(targetBase string) *Mover {
	return &Mover{targetBase: targetBase}
}

// Place moves path into the directory for result, resolving name collisions
// with a numeric stem suffix. It returns the final destination path.
func (m *Mover) Place(path string, result classify.Result) (string, error) {
	destDir := classify.Dir(m.targetBase, result)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create category dir: %w", err)
	}

	dest, err := resolveCollision(destDir, filepath.Base(path))
	if err != nil {
		return "", err
	}
	if err := fileutil.MoveFile(path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// resolveCollision finds the first free name in dir for base, trying the
// original name first and then stem_1, stem_2, and so on before the
// extension.
func resolveCollision(dir, base string) (string, error) {
	candidate := filepath.Join(dir, base)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; i <= maxCollisionSuffix; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %q in %s after %d attempts", base, dir, maxCollisionSuffix)
}
