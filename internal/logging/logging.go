// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/querydesk/backend/internal/config"
)

// New builds a logger writing to w. Pretty selects the human console format.
func New(w io.Writer, cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid LOG_LEVEL value %q: %w", cfg.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Setup installs a stderr logger as the global zerolog logger.
func Setup(cfg config.LogConfig) error {
	logger, err := New(os.Stderr, cfg)
	if err != nil {
		return err
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = logger
	return nil
}
