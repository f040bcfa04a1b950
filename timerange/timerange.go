// Package timerange provides a lazy datetime range generator that works like
// an integer range, but over time.Time values: a start, an exclusive stop,
// and either an explicit step or a number of steps to divide the span into.
package timerange

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// ErrInvalidArgument is the kind wrapped by every argument validation
// failure: step and steps both or neither given, a zero step, a step whose
// sign disagrees with the direction from start to stop, a non-positive step
// count, or a step count over an empty span.
var ErrInvalidArgument = errors.New("invalid timerange argument")

// Option defines a functional option for configuring a Range.
type Option func(*config) error

type config struct {
	step    time.Duration
	hasStep bool
	steps   int
	hasN    bool
}

// WithStep sets the increment between produced timestamps. Mutually
// exclusive with WithNumSteps.
func WithStep(step time.Duration) Option {
	return func(c *config) error {
		c.step = step
		c.hasStep = true
		return nil
	}
}

// WithNumSteps divides the span from start to stop into n equal steps.
// Mutually exclusive with WithStep.
func WithNumSteps(n int) Option {
	return func(c *config) error {
		c.steps = n
		c.hasN = true
		return nil
	}
}

// Range is a lazy, finite, non-restartable cursor over timestamps. Values
// are produced on demand by Next; once the cursor reaches stop it stays
// exhausted.
type Range struct {
	current time.Time
	stop    time.Time
	step    time.Duration
}

// New validates the arguments and builds a Range from start towards stop,
// stop excluded. Exactly one of WithStep and WithNumSteps must be given.
// Descending ranges are produced when stop is before start and the step is
// negative.
func New(start, stop time.Time, opts ...Option) (*Range, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.hasStep == cfg.hasN {
		return nil, fmt.Errorf("%w: requires either a step or a number of steps, but not both", ErrInvalidArgument)
	}

	step := cfg.step

	if cfg.hasN {
		if cfg.steps <= 0 {
			return nil, fmt.Errorf("%w: number of steps must be positive, got %d", ErrInvalidArgument, cfg.steps)
		}

		span := stop.Sub(start)
		if span == 0 {
			return nil, fmt.Errorf("%w: no range can be generated with start equal to stop", ErrInvalidArgument)
		}

		step = span / time.Duration(cfg.steps)
	} else {
		switch {
		case step == 0:
			return nil, fmt.Errorf("%w: step must not be zero", ErrInvalidArgument)
		case stop.After(start) && step < 0:
			return nil, fmt.Errorf("%w: step must be positive when start is before stop", ErrInvalidArgument)
		case stop.Before(start) && step > 0:
			return nil, fmt.Errorf("%w: step must be negative when start is after stop", ErrInvalidArgument)
		}
	}

	return &Range{current: start, stop: stop, step: step}, nil
}

// Next returns the next timestamp in the range, reporting false once the
// range is exhausted.
func (r *Range) Next() (time.Time, bool) {
	var inBounds bool
	if r.step > 0 {
		inBounds = r.current.Before(r.stop)
	} else {
		inBounds = r.current.After(r.stop)
	}

	if !inBounds {
		return time.Time{}, false
	}

	t := r.current
	r.current = r.current.Add(r.step)

	return t, true
}

// Seq adapts the cursor to an iterator. The sequence drains the same cursor
// Next does, so it is single-use like the Range itself.
func (r *Range) Seq() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for {
			t, ok := r.Next()
			if !ok || !yield(t) {
				return
			}
		}
	}
}

// Collect drains the remainder of the range into a slice.
func (r *Range) Collect() []time.Time {
	var out []time.Time
	for t, ok := r.Next(); ok; t, ok = r.Next() {
		out = append(out, t)
	}

	return out
}
