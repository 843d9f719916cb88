// Package logging constructs zerolog loggers from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Output destinations.
const (
	outputStderr = "stderr"
	outputStdout = "stdout"
	outputFile   = "file"
)

// Formats.
const (
	formatConsole = "console"
	formatJSON    = "json"
)

// Config selects level, format, and destination for a logger.
type Config struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	// Unparseable values fall back to info.
	Level string

	// Format is "console" (human-readable) or "json" (default).
	Format string

	// Output is "stderr" (default), "stdout", or "file".
	Output string

	// File is the log file path when Output is "file".
	File string

	// Caller adds caller annotations when true.
	Caller bool
}

// New builds a logger from cfg. When Output is "file" the parent directory
// is created if needed and the file is opened in append mode.
func New(cfg Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var w io.Writer
	switch cfg.Output {
	case outputStdout:
		w = os.Stdout
	case outputFile:
		if cfg.File == "" {
			return zerolog.Nop(), fmt.Errorf("log output is %q but no file path configured", outputFile)
		}
		if mkErr := os.MkdirAll(filepath.Dir(cfg.File), 0750); mkErr != nil {
			return zerolog.Nop(), fmt.Errorf("creating log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			return zerolog.Nop(), fmt.Errorf("opening log file: %w", openErr)
		}
		w = f
	case outputStderr, "":
		w = os.Stderr
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log output %q", cfg.Output)
	}

	if cfg.Format == formatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), nil
}
