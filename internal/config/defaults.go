package config

const (
	defaultOutputDir = "~/.local/share/svgvault/output"
	defaultLogDir    = "~/.local/share/svgvault/logs"
	defaultReportDB  = "~/.local/share/svgvault/reports.db"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	defaultChunkSize = 1024
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			ReportDB:  defaultReportDB,
		},
		Encoding: Encoding{
			ChunkSize:     defaultChunkSize,
			FFProbeBinary: "ffprobe",
		},
		Batch: Batch{
			Workers: 0,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
