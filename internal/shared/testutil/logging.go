// Package testutil provides test-only helpers shared across packages.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogRecord is one captured slog record.
type LogRecord struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogRecorder is a slog.Handler that buffers records for assertions.
type LogRecorder struct {
	mu      sync.Mutex
	records []LogRecord
	attrs   []slog.Attr
}

// NewTestLogger returns a logger whose output can be inspected.
func NewTestLogger() (*slog.Logger, *LogRecorder) {
	recorder := &LogRecorder{}
	return slog.New(recorder), recorder
}

// Handle implements slog.Handler.
func (h *LogRecorder) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, LogRecord{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// Enabled implements slog.Handler. All levels are captured.
func (h *LogRecorder) Enabled(context.Context, slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler. The derived handler shares the
// record buffer so assertions see logs from child loggers too.
func (h *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &childRecorder{parent: h, attrs: attrs}
}

// WithGroup implements slog.Handler. Groups are flattened; tests only
// assert on keys and messages.
func (h *LogRecorder) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of the captured records.
func (h *LogRecorder) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// ContainsMessage reports whether any record contains the substring.
func (h *LogRecorder) ContainsMessage(message string) bool {
	for _, r := range h.Records() {
		if strings.Contains(r.Message, message) {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any record carries the attribute.
func (h *LogRecorder) ContainsAttr(key string, value any) bool {
	for _, r := range h.Records() {
		if v, ok := r.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level records.
func (h *LogRecorder) ErrorCount() int {
	count := 0
	for _, r := range h.Records() {
		if r.Level >= slog.LevelError {
			count++
		}
	}
	return count
}

// childRecorder applies With attributes while writing into the parent
// buffer.
type childRecorder struct {
	parent *LogRecorder
	attrs  []slog.Attr
}

func (c *childRecorder) Handle(ctx context.Context, r slog.Record) error {
	clone := r.Clone()
	clone.AddAttrs(c.attrs...)
	return c.parent.Handle(ctx, clone)
}

func (c *childRecorder) Enabled(context.Context, slog.Level) bool {
	return true
}

func (c *childRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(c.attrs)+len(attrs))
	merged = append(merged, c.attrs...)
	merged = append(merged, attrs...)
	return &childRecorder{parent: c.parent, attrs: merged}
}

func (c *childRecorder) WithGroup(string) slog.Handler {
	return c
}
