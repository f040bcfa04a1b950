// Package testdoubles provides spy implementations of the observable
// observability interfaces, used to verify that containers emit the expected
// logs and metrics without requiring observability infrastructure.
package testdoubles

import (
	"sync"

	"github.com/NixonInnes/gosmorg/observable"
)

// LoggerSpy is an observable.Logger implementation that captures logging
// calls for testing.
type LoggerSpy struct {
	mu      sync.Mutex
	records map[string][]SpyLogRecord
}

// SpyLogRecord represents a recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

// NewLoggerSpy creates a new LoggerSpy instance.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{records: make(map[string][]SpyLogRecord)}
}

// Debug implements the Logger interface for testing.
func (s *LoggerSpy) Debug(msg string, args ...any) { s.record("debug", msg, args) }

// Info implements the Logger interface for testing.
func (s *LoggerSpy) Info(msg string, args ...any) { s.record("info", msg, args) }

// Warn implements the Logger interface for testing.
func (s *LoggerSpy) Warn(msg string, args ...any) { s.record("warn", msg, args) }

// Error implements the Logger interface for testing.
func (s *LoggerSpy) Error(msg string, args ...any) { s.record("error", msg, args) }

func (s *LoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[level] = append(s.records[level], SpyLogRecord{Level: level, Message: msg, Args: args})
}

// Records returns a copy of all records logged at the given level.
func (s *LoggerSpy) Records(level string) []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records[level]...)
}

// HasLog checks if a record with the given level and message exists.
func (s *LoggerSpy) HasLog(level, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records[level] {
		if record.Message == message {
			return true
		}
	}

	return false
}

// Reset clears all recorded log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string][]SpyLogRecord)
}

// Compile-time check to ensure LoggerSpy implements the Logger interface.
var _ observable.Logger = (*LoggerSpy)(nil)
