package config

import (
	"github.com/rshade/esmatch/internal/logging"
)

// LoggingConfig is the logging section of the configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ToLoggingConfig converts LoggingConfig to logging.Config.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// DebugLevel returns a copy at debug level that keeps the configured output.
func (lc LoggingConfig) DebugLevel() LoggingConfig {
	lc.Level = "debug"
	return lc
}

// Debug returns a copy that logs at debug level to a console writer on stderr.
func (lc LoggingConfig) Debug() LoggingConfig {
	lc.Level = "debug"
	lc.Format = logging.FormatConsole
	lc.File = ""
	return lc
}
