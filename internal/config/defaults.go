package config

import "time"

const (
	defaultSourceDir     = "~/Downloads"
	defaultTargetDir     = "~/Sorted"
	defaultQuarantineDir = "~/Sorted/.quarantine"
	defaultLogDir        = "~/.local/share/curator/logs"

	defaultScanIntervalSeconds = 5
	defaultScanInterval        = time.Duration(defaultScanIntervalSeconds) * time.Second
	defaultMaxClassifyBytes    = int64(1 << 20) // 1 MiB
	defaultQueueCapacity       = 256
	defaultWatchBackend        = WatchBackendPoll

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Recognized watch_backend values.
const (
	WatchBackendPoll   = "poll"
	WatchBackendNotify = "fsnotify"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:     defaultSourceDir,
			TargetDir:     defaultTargetDir,
			QuarantineDir: defaultQuarantineDir,
			LogDir:        defaultLogDir,
		},
		Engine: Engine{
			ScanIntervalSeconds: defaultScanIntervalSeconds,
			MaxClassifyBytes:    defaultMaxClassifyBytes,
			QueueCapacity:       defaultQueueCapacity,
			SeedDigestCache:     true,
			WatchBackend:        defaultWatchBackend,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
