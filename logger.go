// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with rendering on another goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by sessions, pipelines and renderers.
// By default playground produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by playground:
//   - [slog.LevelDebug]: pipeline state, buffer sizes, suboptimal frames
//   - [slog.LevelInfo]: adapter selection, swapchain configuration
//   - [slog.LevelWarn]: clamped resizes, dropped frames, release errors
//
// Example:
//
//	playground.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
// Sub-packages and the demo binary call this to share one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
