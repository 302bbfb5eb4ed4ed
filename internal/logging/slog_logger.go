// Package logging provides a common interface and setup for application-wide logging.
// This file implements the Logger interface on top of the standard library's
// log/slog package. The handler is always bound to a diagnostic writer
// (stderr in production) so log output can never contaminate the protocol
// stream on stdout.
package logging

// file: internal/logging/slog_logger.go

import (
	"context"
	"io"
	"log/slog"
)

// slogLogger adapts a *slog.Logger to the Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a Logger writing human-readable text lines to w.
// Pass the process's stderr for w; the protocol stream must stay clean.
// When debug is true, debug-level messages are emitted as well.
func NewSlogLogger(w io.Writer, debug bool) Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{logger: slog.New(handler)}
}

// Debug implements Logger.
func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info implements Logger.
func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn implements Logger.
func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error implements Logger.
func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// WithContext implements Logger. slog handlers receive the context per call,
// so there is nothing to capture here.
func (l *slogLogger) WithContext(_ context.Context) Logger {
	return l
}

// WithField implements Logger, returning a logger that attaches the given
// key-value pair to every record.
func (l *slogLogger) WithField(key string, value any) Logger {
	return &slogLogger{logger: l.logger.With(key, value)}
}
