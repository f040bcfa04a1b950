package observable

import (
	"time"
)

// Logger interface for observer registration logging, dispatch diagnostics,
// warnings, and error reporting. The interface is dependency-free so callers
// can plug in slog, zerolog, or any other backend; see the oteladapters
// subpackage for a ready-made OpenTelemetry bridge.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting notification dispatch performance
// and operational metrics. Implementations receive dispatch durations,
// notification counts, and registry sizes; see the oteladapters subpackage
// for an OpenTelemetry-backed implementation.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// Metric names emitted by the observable containers.
const (
	MetricNotifyDuration      = "observable_notify_duration_seconds"
	MetricNotificationsTotal  = "observable_notifications_total"
	MetricObserversSweptTotal = "observable_observers_swept_total"
	MetricObservers           = "observable_observers"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type noopMetrics struct{}

func (noopMetrics) RecordDuration(string, time.Duration, map[string]string) {}
func (noopMetrics) IncrementCounter(string, map[string]string)              {}
func (noopMetrics) RecordValue(string, float64, map[string]string)          {}
