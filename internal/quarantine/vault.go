package quarantine

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"curator/internal/fileutil"
	"curator/internal/logging"
)

// LogFilename is the append-only JSONL event log inside the quarantine
// directory.
const LogFilename = "quarantine_log.json"

const stampLayout = "20060102150405"

// ErrNoEntry is returned by Restore when no logged entry matches the
// requested quarantine filename.
var ErrNoEntry = errors.New("no quarantine entry for file")

// Entry records one isolation decision, one JSON object per log line.
type Entry struct {
	Timestamp      time.Time `json:"timestamp"`
	OriginalFile   string    `json:"original_file"`
	QuarantineFile string    `json:"quarantine_file"`
	Reason         string    `json:"reason"`
}

// Vault owns the quarantine directory and its event log.
type Vault struct {
	dir       string
	sourceDir string
	logger    *slog.Logger
	now       func() time.Time
}

// NewVault constructs a vault rooted at dir. Restored files return to
// sourceDir.
func NewVault(dir, sourceDir string, logger *slog.Logger) *Vault {
	return &Vault{
		dir:       dir,
		sourceDir: sourceDir,
		logger:    logging.NewComponentLogger(logger, "quarantine"),
		now:       time.Now,
	}
}

// Dir returns the quarantine directory.
func (v *Vault) Dir() string {
	return v.dir
}

func (v *Vault) logPath() string {
	return filepath.Join(v.dir, LogFilename)
}

// Quarantine moves path into the vault under a timestamp-prefixed name and
// appends an Entry to the log. The move itself is the primary action: if
// only the log append fails, the returned entry is still valid alongside the
// error so the caller can downgrade the failure to a warning.
func (v *Vault) Quarantine(path, reason string) (Entry, error) {
	if err := os.MkdirAll(v.dir, 0o755); err != nil {
		return Entry{}, fmt.Errorf("ensure quarantine directory: %w", err)
	}

	now := v.now().UTC()
	base := filepath.Base(path)
	target := filepath.Join(v.dir, now.Format(stampLayout)+"_"+base)
	for n := 1; ; n++ {
		if _, err := os.Lstat(target); errors.Is(err, os.ErrNotExist) {
			break
		}
		target = filepath.Join(v.dir, fmt.Sprintf("%s-%d_%s", now.Format(stampLayout), n, base))
	}

	if err := fileutil.MoveFile(path, target); err != nil {
		return Entry{}, fmt.Errorf("isolate %s: %w", base, err)
	}

	entry := Entry{
		Timestamp:      now,
		OriginalFile:   path,
		QuarantineFile: filepath.Base(target),
		Reason:         reason,
	}
	v.logger.Info("file quarantined",
		logging.String(logging.FieldPath, path),
		logging.String("quarantine_file", entry.QuarantineFile),
		logging.String("reason", reason),
	)
	if err := v.appendEntry(entry); err != nil {
		return entry, fmt.Errorf("append quarantine log: %w", err)
	}
	return entry, nil
}

// Restore reverses a quarantine: the file moves back into the source
// directory under its original basename and the matching log entry is
// removed. The quarantine filename (not the original name) selects the
// entry.
func (v *Vault) Restore(quarantineFilename string) (string, error) {
	quarantineFilename = filepath.Base(strings.TrimSpace(quarantineFilename))
	if quarantineFilename == "" {
		return "", ErrNoEntry
	}

	entries, err := v.Entries()
	if err != nil {
		return "", err
	}

	idx := -1
	for i, entry := range entries {
		if entry.QuarantineFile == quarantineFilename {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", fmt.Errorf("%w: %s", ErrNoEntry, quarantineFilename)
	}

	original := filepath.Base(entries[idx].OriginalFile)
	if original == "." || original == string(filepath.Separator) {
		original = stripStamp(quarantineFilename)
	}
	restored, err := freeName(v.sourceDir, original)
	if err != nil {
		return "", fmt.Errorf("restore %s: %w", quarantineFilename, err)
	}
	if err := fileutil.MoveFile(filepath.Join(v.dir, quarantineFilename), restored); err != nil {
		return "", fmt.Errorf("restore %s: %w", quarantineFilename, err)
	}

	remaining := append(entries[:idx:idx], entries[idx+1:]...)
	if err := v.rewriteLog(remaining); err != nil {
		return restored, fmt.Errorf("rewrite quarantine log: %w", err)
	}

	v.logger.Info("file restored from quarantine",
		logging.String("quarantine_file", quarantineFilename),
		logging.String(logging.FieldPath, restored),
	)
	return restored, nil
}

// maxRestoreSuffix bounds the free-name scan during restore.
const maxRestoreSuffix = 10000

// freeName returns the first unoccupied path in dir for base, trying the
// original name first and then stem_1, stem_2, and so on before the
// extension. A file that arrived in the source directory under the same
// name is never overwritten.
func freeName(dir, base string) (string, error) {
	candidate := filepath.Join(dir, base)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; i <= maxRestoreSuffix; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %q in %s after %d attempts", base, dir, maxRestoreSuffix)
}

// Entries returns the logged quarantine events in append order. A missing
// log file means no entries.
func (v *Vault) Entries() ([]Entry, error) {
	f, err := os.Open(v.logPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open quarantine log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			// A torn trailing line from a crashed append is skipped rather
			// than poisoning every later read.
			v.logger.Warn("skipping malformed quarantine log line", logging.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("read quarantine log: %w", err)
	}
	return entries, nil
}

// FileCount reports how many quarantined files are currently present on
// disk, excluding the log itself.
func (v *Vault) FileCount() int {
	dirents, err := os.ReadDir(v.dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, d := range dirents {
		if d.IsDir() || d.Name() == LogFilename {
			continue
		}
		count++
	}
	return count
}

func (v *Vault) appendEntry(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(v.logPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return f.Close()
}

func (v *Vault) rewriteLog(entries []Entry) error {
	if len(entries) == 0 {
		err := os.Remove(v.logPath())
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	tmp := v.logPath() + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return err
		}
		if _, err := f.Write(append(data, '\n')); err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return err
		}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, v.logPath())
}

// stripStamp removes the timestamp prefix a quarantined filename carries.
func stripStamp(name string) string {
	if idx := strings.Index(name, "_"); idx >= 0 && idx < len(name)-1 {
		return name[idx+1:]
	}
	return name
}
