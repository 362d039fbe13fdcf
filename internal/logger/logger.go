// Package logger provides structured slog loggers. All logs are written in
// JSON format to size-rotated files.
//
// Log files are organized as:
//
//	<logDir>/system.log   application-level events
//	<logDir>/mail.log     mail delivery events (transport, verification, outcomes)
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits shared by every log file.
const (
	maxSizeMB  = 20
	maxBackups = 5
	maxAgeDays = 28
)

// NewSystemLogger creates a JSON slog.Logger that writes to <logDir>/system.log.
// The directory is created if it does not exist.
func NewSystemLogger(logDir string, level slog.Level) (*slog.Logger, error) {
	w, err := rotatingWriter(logDir, "system.log")
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// NewMailLogger creates a JSON slog.Logger that writes to <logDir>/mail.log.
// Every record carries component=mail.
func NewMailLogger(logDir string, level slog.Level) (*slog.Logger, error) {
	w, err := rotatingWriter(logDir, "mail.log")
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With("component", "mail"), nil
}

// NewConsoleLogger writes text records to w, for CLI commands.
func NewConsoleLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func rotatingWriter(logDir, name string) (io.Writer, error) {
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", logDir, err)
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, name),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}, nil
}
