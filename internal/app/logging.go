package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// newLogger opens the log file for appending and returns a logger writing to
// it. The terminal belongs to the TUI, so nothing is logged to stderr.
func newLogger(path string, level hclog.Level) (hclog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "fledgling",
		Level:      level,
		Output:     f,
		TimeFormat: "2006-01-02T15:04:05.000Z0700",
	})
	return logger, func() { _ = f.Close() }, nil
}
