// Package logging wires the application logger. Messages go to stderr and
// are duplicated into a log file under the config directory so that
// `mmgmt log` can replay them later.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileName is the log file name inside the config directory.
const FileName = "mmgmt.log"

// FilePath returns the log file path inside dir.
func FilePath(dir string) string {
	return filepath.Join(dir, FileName)
}

// Setup builds the application logger. If the log file under dir cannot be
// opened the logger falls back to stderr only; logging must never block a
// transfer.
func Setup(dir string, debug bool) *log.Logger {
	var w io.Writer = os.Stderr
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(FilePath(dir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				w = io.MultiWriter(os.Stderr, f)
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "mmgmt",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
