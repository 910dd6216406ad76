package preflight

import (
	"curator/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckSourceReadable("Source directory", cfg.Paths.SourceDir),
		CheckDirectoryWritable("Target directory", cfg.Paths.TargetDir),
		CheckDirectoryWritable("Quarantine directory", cfg.Paths.QuarantineDir),
		CheckDirectoryWritable("Log directory", cfg.Paths.LogDir),
	}
	results = append(results, CheckFreeSpace("Target free space", cfg.Paths.TargetDir))
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
