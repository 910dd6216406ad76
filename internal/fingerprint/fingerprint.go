// Package fingerprint produces content digests for deduplication.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize bounds per-read memory so arbitrarily large files never stall
// the worker beyond one chunk of I/O at a time.
const chunkSize = 256 * 1024

// Digest streams the file at path through SHA-256 and returns the
// hex-encoded sum. The file is never loaded into memory whole. Errors
// (including the file vanishing mid-stream) are returned to the caller,
// which treats them as a per-file failure rather than a batch failure.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for digest: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(hasher, f, buf); err != nil {
		return "", fmt.Errorf("digest %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
