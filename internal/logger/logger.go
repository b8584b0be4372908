// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// registration robot.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer; a run logger owns its log
// file and must be closed when the run ends.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger

	runID string
	file  io.Closer
}

func configureGlobals() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"
}

// NewLogger constructs a *Logger for the given role label
// (e.g. "provision").
//
// The logger is configured with:
//   - global log level set to Debug (all levels are emitted);
//   - a "role" field set to role;
//   - a "ts" timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     (instead of the default file:line format) for easier log navigation.
//
// Output is written to os.Stderr in JSON format.
func NewLogger(role string) *Logger {
	configureGlobals()
	logger := zerolog.New(os.Stderr).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: logger}
}

// NewRunLogger constructs the logger of one robot run. Every entry is written
// as JSON to path, which is truncated first, and in human-readable form to
// os.Stderr. Every entry carries a fresh "run_id".
//
// The caller must Close the returned logger to flush and release the file.
func NewRunLogger(role, path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}
	return newRunLogger(role, zerolog.MultiLevelWriter(f, console), f), nil
}

func newRunLogger(role string, w io.Writer, file io.Closer) *Logger {
	configureGlobals()
	runID := uuid.NewString()
	logger := zerolog.New(w).With().
		Str("role", role).
		Str("run_id", runID).
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: logger, runID: runID, file: file}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// RunID returns the identifier attached to every entry of a run logger, or
// an empty string for other loggers.
func (l *Logger) RunID() string {
	return l.runID
}

// Close releases the log file of a run logger. It is a no-op for loggers
// that do not own a file and is safe to call more than once.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger. The child never owns the log file.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{Logger: l.With().Logger(), runID: l.runID}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's
// WithContext and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default logger
// (or a disabled one), so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}
