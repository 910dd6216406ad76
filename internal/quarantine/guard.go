package quarantine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// suspiciousExtensions flag file types commonly abused for autorun payloads.
var suspiciousExtensions = map[string]struct{}{
	".scr": {},
	".pif": {},
	".vbs": {},
	".bat": {},
	".cmd": {},
	".com": {},
}

// suspiciousNames are exact filenames associated with autorun or metadata
// droppers.
var suspiciousNames = map[string]struct{}{
	"autorun.inf": {},
	"desktop.ini": {},
	"thumbs.db":   {},
}

// disguiseExtensions are extensions that claim passive content; an
// executable header behind one of these is treated as a disguise attempt.
var disguiseExtensions = map[string]struct{}{
	".pdf": {},
	".doc": {},
	".jpg": {},
}

// dosHeader is the two-byte executable magic shared by DOS/PE binaries.
var dosHeader = []byte{'M', 'Z'}

// AssessRisk applies cheap structural checks to decide whether a file should
// be isolated instead of sorted. The checks are a heuristic filter, not a
// security boundary: a clean verdict proves nothing about the file, and a
// quarantine verdict is advisory. Callers must not present this as malware
// detection.
func AssessRisk(path string) (bool, string) {
	name := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(name)

	if _, ok := suspiciousExtensions[ext]; ok {
		return true, fmt.Sprintf("suspicious extension %s", ext)
	}
	if _, ok := suspiciousNames[name]; ok {
		return true, fmt.Sprintf("suspicious filename %s", name)
	}

	if _, ok := disguiseExtensions[ext]; ok {
		header := make([]byte, 2)
		f, err := os.Open(path)
		if err != nil {
			// Unreadable files are handled downstream as I/O errors; the
			// guard only judges what it can see.
			return false, ""
		}
		defer f.Close()
		if n, _ := f.Read(header); n == len(dosHeader) && bytes.Equal(header, dosHeader) {
			return true, fmt.Sprintf("executable header behind %s extension", ext)
		}
	}

	return false, ""
}
