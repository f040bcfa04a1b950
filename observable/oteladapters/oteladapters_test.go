package oteladapters_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/NixonInnes/gosmorg/observable"
	"github.com/NixonInnes/gosmorg/observable/oteladapters"
)

func Test_SlogLoggerWithHandler_ForwardsRecords(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := oteladapters.NewSlogLoggerWithHandler(handler)

	logger.Debug("dispatching property change", "property", "age")
	logger.Warn("observer not registered", "property", "age")

	output := buf.String()
	assert.Contains(t, output, "dispatching property change")
	assert.Contains(t, output, "observer not registered")
	assert.Contains(t, output, "property=age")
}

func Test_SlogLogger_UsableAsContainerLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	obj, err := observable.NewObject(
		[]observable.Property{observable.Prop("age", 0)},
		observable.WithLogger(oteladapters.NewSlogLoggerWithHandler(handler)),
	)
	require.NoError(t, err)

	require.NoError(t, obj.AddObserver("age", observable.On(func() {})))
	require.NoError(t, obj.Set("age", 1))

	assert.Contains(t, buf.String(), "observer added")
}

func Test_MetricsCollector_ToleratesAllInterfaceCalls(t *testing.T) {
	collector := oteladapters.NewMetricsCollector(noop.NewMeterProvider().Meter("test"))

	labels := map[string]string{"key": "age"}

	// The noop meter accepts every instrument; the adapter must not panic
	// and must reuse cached instruments on repeat calls.
	collector.RecordDuration(observable.MetricNotifyDuration, 5*time.Millisecond, labels)
	collector.RecordDuration(observable.MetricNotifyDuration, 7*time.Millisecond, labels)
	collector.IncrementCounter(observable.MetricNotificationsTotal, labels)
	collector.IncrementCounter(observable.MetricNotificationsTotal, labels)
	collector.RecordValue(observable.MetricObservers, 3, labels)
}
