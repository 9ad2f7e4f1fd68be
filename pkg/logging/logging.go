// Package logging builds the process logger. Output always goes to stderr
// because stdout carries the protocol stream.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/susan8213/vocab-mcp/pkg/config"
)

const prefix = "vocab-mcp"

// New returns a logger on stderr configured from cfg.
func New(cfg *config.Config) *log.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           Level(cfg),
	})
	if cfg != nil && strings.EqualFold(cfg.Log.Format, "json") {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}

// Level resolves the configured level. Debug mode always wins; an
// unparsable level falls back to info.
func Level(cfg *config.Config) log.Level {
	if cfg == nil {
		return log.InfoLevel
	}
	if cfg.Debug {
		return log.DebugLevel
	}
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Log.Level)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
