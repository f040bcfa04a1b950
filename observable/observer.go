package observable

import (
	"weak"
)

// arity describes how many values a callback declared interest in.
type arity int

const (
	arityNone   arity = iota // func()
	arityNew                 // func(new)
	arityOldNew              // func(old, new)
)

// Observer is a registered callback handle. The handle's pointer identity is
// what registries deduplicate and remove by, so callers that intend to remove
// an observer later must keep and reuse the same *Observer.
//
// An observer declares its arity through the constructor it was built with:
//
//   - On: invoked with no arguments,
//   - OnValue: invoked with the new value (a change payload for collections),
//   - OnChange: invoked with the old and the new value (before/after
//     snapshots for collections).
type Observer struct {
	kind  arity
	call0 func()
	call1 func(value any)
	call2 func(old, new any)

	// alive reports whether the observer's owner is still reachable.
	// nil means the observer is held strongly and is always live.
	alive func() bool
}

// On builds an observer that is invoked without arguments.
func On(fn func()) *Observer {
	return &Observer{kind: arityNone, call0: fn}
}

// OnValue builds an observer that receives the new value. For List and Dict
// the value is the ListChange / DictChange describing the mutation.
func OnValue(fn func(value any)) *Observer {
	return &Observer{kind: arityNew, call1: fn}
}

// OnChange builds an observer that receives the old and the new value. For
// List and Dict these are before/after snapshots of the container contents.
func OnChange(fn func(old, new any)) *Observer {
	return &Observer{kind: arityOldNew, call2: fn}
}

// Bound builds an observer whose callback receives its owner, while the
// registry holds the owner only weakly: once nothing else references the
// owner it becomes collectable, and the observer silently stops firing and
// is swept from registries on the next access. This is the weak-holding
// contract for "method of some object" callbacks.
func Bound[T any](owner *T, fn func(owner *T, old, new any)) *Observer {
	ptr := weak.Make(owner)

	obs := &Observer{kind: arityOldNew}
	obs.alive = func() bool { return ptr.Value() != nil }
	obs.call2 = func(old, new any) {
		o := ptr.Value()
		if o == nil {
			return
		}
		fn(o, old, new)
	}

	return obs
}

// WithOwner ties the liveness of obs to owner without changing what the
// callback receives. The callback must not itself capture owner, or the
// weak reference is defeated. Returns obs for chaining.
func WithOwner[T any](obs *Observer, owner *T) *Observer {
	ptr := weak.Make(owner)
	obs.alive = func() bool { return ptr.Value() != nil }
	return obs
}

// live reports whether the observer should still receive notifications.
func (o *Observer) live() bool {
	return o.alive == nil || o.alive()
}

// invoke dispatches one notification with the observer's declared arity.
// value is what a one-argument callback receives; old and new are what a
// two-argument callback receives. For property changes value == new.
func (o *Observer) invoke(value, old, new any) {
	switch o.kind {
	case arityNone:
		o.call0()
	case arityNew:
		o.call1(value)
	case arityOldNew:
		o.call2(old, new)
	}
}
