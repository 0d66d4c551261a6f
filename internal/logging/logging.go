// Package logging sets up the run logger: a size-capped rotating log file,
// mirrored to stderr when attached to a terminal.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logName    = "vigil.log"
	maxSizeMB  = 5
	maxBackups = 3
)

// Setup returns a logger writing to <dir>/vigil.log and a close func that
// flushes the rotating writer. The caller must invoke close before exit.
func Setup(dir string, verbose bool) (*slog.Logger, func()) {
	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(dir, logName),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}

	var w io.Writer = rotating
	if isatty.IsTerminal(os.Stderr.Fd()) {
		w = io.MultiWriter(rotating, os.Stderr)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = rotating.Close() }
}
