package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Encoding.ChunkSize < 0 {
		return fmt.Errorf("encoding.chunk_size must be non-negative, got %d", c.Encoding.ChunkSize)
	}
	if c.Encoding.ChunkSize > 0 && c.Encoding.ChunkSize < 64 {
		return fmt.Errorf("encoding.chunk_size %d is below the 64 byte minimum", c.Encoding.ChunkSize)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must be non-negative, got %d", c.Batch.Workers)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
