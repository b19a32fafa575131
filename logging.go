package boltdriver

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog logger from cfg: disabled means a no-op
// logger, otherwise structured output to stderr, optionally duplicated to
// an append-only log file.
func NewLogger(cfg LoggingConfig) (zerolog.Logger, error) {
	if !cfg.Enabled {
		return zerolog.Nop(), nil
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var w io.Writer = os.Stderr
	if cfg.FilePath != "" {
		file, openErr := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if openErr != nil {
			return zerolog.Nop(), fmt.Errorf("open log file: %w", openErr)
		}
		w = io.MultiWriter(os.Stderr, file)
	}

	log := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("component", "boltdriver").
		Logger()

	return log, nil
}
