// Package logging sets up the process logger. The terminal is owned by the
// UI, so logs always go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/llehouerou/glimpse/internal/config"
)

const defaultLogFile = "glimpse/glimpse.log"

// Setup opens the log file and installs a text handler as the default
// logger. The returned closer flushes and closes the file.
func Setup(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	path, err := resolvePath(cfg.File)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := New(f, cfg.Level)
	slog.SetDefault(logger)
	return logger, f, nil
}

// New returns a text logger writing to w at the named level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func resolvePath(file string) (string, error) {
	if file == "" {
		path, err := xdg.StateFile(defaultLogFile)
		if err != nil {
			return "", fmt.Errorf("resolve log path: %w", err)
		}
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}
	return file, nil
}
