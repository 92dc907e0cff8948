// SPDX-License-Identifier: MIT

// Package logging provides leveled logging and case tracing for kspcheck.
// It offers two complementary outputs:
//   - a leveled slog.Logger for stderr (operational output);
//   - a Trace writing one JSON object per finished case to a JSONL file.
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom slog level below Debug for per-solve detail
// (iteration counts and residuals of every right-hand side).
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a level name to a slog.Level.
// Supported values: "error", "warn", "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled text slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// OrDiscard returns l, or Discard() when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}

	return l
}

// Trace appends case events to a JSONL file. It is safe for concurrent use.
// A nil Trace is valid; all methods are no-ops on a nil receiver.
type Trace struct {
	mu   sync.Mutex
	file *os.File
}

// NewTrace opens path for append, creating parent directories.
// An empty path returns (nil, nil): tracing disabled.
func NewTrace(path string) (*Trace, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	return &Trace{file: f}, nil
}

// Log writes event as a single JSONL line with a "time" field added.
// The caller's map is not mutated. Encoding failures drop the event.
func (t *Trace) Log(event map[string]any) {
	if t == nil || t.file == nil {
		return
	}

	entry := make(map[string]any, len(event)+1)
	for k, v := range event {
		entry[k] = v
	}
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.file.Write(data)
}

// Close closes the underlying file. Safe to call on a nil receiver.
func (t *Trace) Close() error {
	if t == nil || t.file == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.file.Close()
	t.file = nil

	return err
}
