package testsupport

import (
	"path/filepath"
	"testing"

	"svgvault/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReportDB = filepath.Join(base, "reports.db")
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "error"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithChunkSize overrides the chunk envelope size on the test config.
func WithChunkSize(size int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Encoding.ChunkSize = size
	}
}

// WithBatchWorkers overrides the batch worker count on the test config.
func WithBatchWorkers(workers int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Batch.Workers = workers
	}
}
