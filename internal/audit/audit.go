// Package audit records every placement decision and keeps the aggregate
// counters the status surfaces report.
package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogFilename is the append-only JSONL move log inside the target base.
const LogFilename = "sort_log.json"

// MoveEvent is one relocation record, one JSON object per log line.
type MoveEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Source      string    `json:"source"`
	Target      string    `json:"target"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	FileSize    int64     `json:"file_size"`
}

// Log is the append-only move event writer. It is owned by the engine
// worker; no internal locking is provided.
type Log struct {
	path string
	now  func() time.Time
}

// NewLog creates a move log stored under targetBase.
func NewLog(targetBase string) *Log {
	return &Log{
		path: filepath.Join(targetBase, LogFilename),
		now:  time.Now,
	}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// AppendMove records a completed move. Failure here never undoes the move;
// callers downgrade it to a warning.
func (l *Log) AppendMove(source, target, category, subcategory string, size int64) error {
	event := MoveEvent{
		Timestamp:   l.now().UTC(),
		Source:      source,
		Target:      target,
		Category:    category,
		Subcategory: subcategory,
		FileSize:    size,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode move event: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open sort log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append sort log: %w", err)
	}
	return f.Close()
}

// Events reads back every logged move in append order. Missing log means no
// events.
func (l *Log) Events() ([]MoveEvent, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open sort log: %w", err)
	}
	defer f.Close()

	var events []MoveEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event MoveEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}
