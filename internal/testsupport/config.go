package testsupport

import (
	"path/filepath"
	"testing"

	"curator/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "incoming")
	cfgVal.Paths.TargetDir = filepath.Join(base, "sorted")
	cfgVal.Paths.QuarantineDir = filepath.Join(base, "quarantine")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return builder.cfg
}

// WithScanInterval overrides the monitor poll interval in seconds.
func WithScanInterval(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Engine.ScanIntervalSeconds = seconds
	}
}

// WithMaxClassifyBytes overrides the content-classification size ceiling.
func WithMaxClassifyBytes(n int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Engine.MaxClassifyBytes = n
	}
}

// WithSeededCache enables digest cache seeding from the target tree.
func WithSeededCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Engine.SeedDigestCache = true
	}
}
