// Package oteladapters provides OpenTelemetry adapters for the observable
// observability interfaces. These adapters enable plug-and-play integration
// with OpenTelemetry for users who do not want to implement the interfaces
// themselves.
package oteladapters

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/NixonInnes/gosmorg/observable"
)

// SlogBridgeLogger implements observable.Logger using the OpenTelemetry slog
// bridge. This is the recommended implementation as it forwards log records
// to the global OpenTelemetry LoggerProvider while keeping the familiar
// log/slog call surface.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a logger backed by the OpenTelemetry slog
// bridge, using the global OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogLoggerWithHandler creates a logger over the provided slog.Handler.
// Note: this does NOT route records through OpenTelemetry - the handler is
// used as-is. For OpenTelemetry integration use NewSlogBridgeLogger.
func NewSlogLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

// Debug logs a debug message.
func (l *SlogBridgeLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message.
func (l *SlogBridgeLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *SlogBridgeLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *SlogBridgeLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Ensure SlogBridgeLogger implements observable.Logger.
var _ observable.Logger = (*SlogBridgeLogger)(nil)
