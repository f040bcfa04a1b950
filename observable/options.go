package observable

// Option defines a functional option for configuring an observable container.
type Option func(*config) error

type config struct {
	logger  Logger
	metrics MetricsCollector
	hook    ChangeHook
}

func defaultConfig() config {
	return config{
		logger:  noopLogger{},
		metrics: noopMetrics{},
	}
}

// WithLogger sets the logger for the container.
//
// Debug level: observer registration and dispatch diagnostics (development use)
// Warn level: removal of observers that were never registered
// Error level: never emitted by the container itself - callback panics
// propagate to the mutating caller instead of being logged and swallowed.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the container. The collector
// receives dispatch durations, notification counts, swept-observer counts,
// and registry sizes.
func WithMetrics(collector MetricsCollector) Option {
	return func(c *config) error {
		c.metrics = collector
		return nil
	}
}

// WithChangeHook installs the instance change hook on an Object. The hook is
// invoked before externally registered observers on every property write.
// The capability is bound once here, not re-probed per call. List and Dict
// ignore this option.
func WithChangeHook(hook ChangeHook) Option {
	return func(c *config) error {
		c.hook = hook
		return nil
	}
}
