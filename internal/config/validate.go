package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError aggregates every configuration problem found during Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "configuration invalid"
	}
	return "configuration invalid: " + strings.Join(e.Problems, "; ")
}

// Validate checks the configuration for fatal misconfiguration. It runs after
// normalize, so all paths are absolute.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		problems = append(problems, "paths.source_dir must be set")
	}
	if strings.TrimSpace(c.Paths.TargetDir) == "" {
		problems = append(problems, "paths.target_dir must be set")
	}
	if c.Paths.SourceDir != "" && c.Paths.SourceDir == c.Paths.TargetDir {
		problems = append(problems, "paths.source_dir and paths.target_dir must differ")
	}
	if c.Paths.QuarantineDir != "" && c.Paths.QuarantineDir == c.Paths.SourceDir {
		problems = append(problems, "paths.quarantine_dir must not equal paths.source_dir")
	}
	if strings.HasPrefix(c.Paths.SourceDir+"/", c.Paths.TargetDir+"/") {
		problems = append(problems, "paths.source_dir must not live inside paths.target_dir")
	}

	if c.Engine.ScanIntervalSeconds < 0 {
		problems = append(problems, "engine.scan_interval_seconds must not be negative")
	}
	if c.Engine.MaxClassifyBytes < 0 {
		problems = append(problems, "engine.max_classify_bytes must not be negative")
	}
	if c.Engine.QueueCapacity < 0 {
		problems = append(problems, "engine.queue_capacity must not be negative")
	}
	switch c.Engine.WatchBackend {
	case WatchBackendPoll, WatchBackendNotify:
	default:
		problems = append(problems, fmt.Sprintf("engine.watch_backend: unsupported value %q (expected %q or %q)", c.Engine.WatchBackend, WatchBackendPoll, WatchBackendNotify))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// IsValidationError reports whether err is a configuration validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
