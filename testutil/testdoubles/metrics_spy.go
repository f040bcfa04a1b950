package testdoubles

import (
	"sync"
	"time"

	"github.com/NixonInnes/gosmorg/observable"
)

// MetricsCollectorSpy is an observable.MetricsCollector implementation that
// captures metric calls for testing.
type MetricsCollectorSpy struct {
	mu        sync.Mutex
	durations []SpyDurationRecord
	counters  map[string]int
	values    []SpyValueRecord
}

// SpyDurationRecord represents a recorded duration measurement.
type SpyDurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// SpyValueRecord represents a recorded gauge value.
type SpyValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy instance.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{counters: make(map[string]int)}
}

// RecordDuration implements the MetricsCollector interface for testing.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = append(s.durations, SpyDurationRecord{Metric: metric, Duration: duration, Labels: labels})
}

// IncrementCounter implements the MetricsCollector interface for testing.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[counterKey(metric, labels)]++
}

// RecordValue implements the MetricsCollector interface for testing.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = append(s.values, SpyValueRecord{Metric: metric, Value: value, Labels: labels})
}

// CounterValue returns the count recorded for a metric with the given labels.
func (s *MetricsCollectorSpy) CounterValue(metric string, labels map[string]string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counters[counterKey(metric, labels)]
}

// DurationRecords returns a copy of all recorded durations for a metric.
func (s *MetricsCollectorSpy) DurationRecords(metric string) []SpyDurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []SpyDurationRecord
	for _, record := range s.durations {
		if record.Metric == metric {
			out = append(out, record)
		}
	}

	return out
}

// ValueRecords returns a copy of all recorded gauge values for a metric.
func (s *MetricsCollectorSpy) ValueRecords(metric string) []SpyValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []SpyValueRecord
	for _, record := range s.values {
		if record.Metric == metric {
			out = append(out, record)
		}
	}

	return out
}

func counterKey(metric string, labels map[string]string) string {
	if v, ok := labels["key"]; ok {
		return metric + "|key=" + v
	}

	return metric
}

// Compile-time check to ensure MetricsCollectorSpy implements the MetricsCollector interface.
var _ observable.MetricsCollector = (*MetricsCollectorSpy)(nil)
