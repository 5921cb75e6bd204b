// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"sync"

	"github.com/ochairo/thirdparty/internal/domain/interfaces"
)

// LogEntry is one message captured by RecordingLogger
type LogEntry struct {
	Level   string
	Message string
	Fields  []interfaces.Field
}

// Field returns the value of the named field, or nil
func (e LogEntry) Field(key string) interface{} {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// RecordingLogger keeps every message in memory so callers can assert on warnings
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Debug records a debug message
func (r *RecordingLogger) Debug(msg string, fields ...interfaces.Field) { r.record("DEBUG", msg, fields) }

// Info records an informational message
func (r *RecordingLogger) Info(msg string, fields ...interfaces.Field) { r.record("INFO", msg, fields) }

// Warn records a warning
func (r *RecordingLogger) Warn(msg string, fields ...interfaces.Field) { r.record("WARN", msg, fields) }

// Error records an error
func (r *RecordingLogger) Error(msg string, fields ...interfaces.Field) { r.record("ERROR", msg, fields) }

// Entries returns the recorded messages of the given level, or all of them when level is empty
func (r *RecordingLogger) Entries(level string) []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []LogEntry
	for _, e := range r.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (r *RecordingLogger) record(level, msg string, fields []interfaces.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, LogEntry{Level: level, Message: msg, Fields: fields})
}
