package observable

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NixonInnes/gosmorg/observable/internal/relock"
)

// Property declares a named observable attribute with a default value. The
// declaration itself is stateless; the current value lives on the Object
// instance.
type Property struct {
	Name    string
	Default any
}

// Prop is shorthand for declaring a Property.
func Prop(name string, def any) Property {
	return Property{Name: name, Default: def}
}

// ChangeHook is the capability interface for instance-defined change
// handling. When installed via WithChangeHook it is invoked with the
// property name and the old and new values on every write, before any
// externally registered observer.
type ChangeHook interface {
	OnPropertyChanged(name string, old, new any)
}

// Object owns a set of declared observable properties. Every write to a
// property flows through Set - the single mutator entry point - which stores
// the value and notifies the property's observers while holding the
// instance's re-entrant lock. Writes always notify, even when the new value
// equals the old one.
//
// All operations on one Object serialize through one re-entrant lock owned
// by that instance; locks are never shared across instances. Re-entrancy
// lets a callback write another observed property on the same instance
// without deadlocking.
type Object struct {
	id   uuid.UUID
	mu   relock.Mutex
	hook ChangeHook

	properties map[string]Property
	values     map[string]any
	observers  map[string]*registry

	logger  Logger
	metrics MetricsCollector
}

// NewObject creates an Object with the given property declarations.
func NewObject(properties []Property, opts ...Option) (*Object, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	o := &Object{
		id:         uuid.New(),
		hook:       cfg.hook,
		properties: make(map[string]Property, len(properties)),
		values:     make(map[string]any, len(properties)),
		observers:  make(map[string]*registry),
		logger:     cfg.logger,
		metrics:    cfg.metrics,
	}

	for _, p := range properties {
		if p.Name == "" {
			return nil, ErrEmptyPropertyName
		}
		if _, dup := o.properties[p.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProperty, p.Name)
		}
		o.properties[p.Name] = p
	}

	return o, nil
}

// ID returns the instance identity used in log fields and snapshots.
func (o *Object) ID() uuid.UUID {
	return o.id
}

// Has reports whether a property with the given name was declared.
func (o *Object) Has(name string) bool {
	_, ok := o.properties[name]
	return ok
}

// Get returns the current value of the named property, or its declared
// default if it was never written.
func (o *Object) Get(name string) (any, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	prop, ok := o.properties[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}

	if v, ok := o.values[name]; ok {
		return v, nil
	}

	return prop.Default, nil
}

// Set writes the named property and notifies its observers. The old value,
// the default if the property was never written, and the new value are
// dispatched to each observer with the arity it declared, in registration
// order. An instance ChangeHook fires before external observers. The write
// is unconditional: equal old and new values still notify.
//
// A panicking observer propagates to the caller of Set; observers scheduled
// ahead of it have already run, and the lock is released on the way out.
func (o *Object) Set(name string, value any) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	prop, ok := o.properties[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}

	old := prop.Default
	if v, ok := o.values[name]; ok {
		old = v
	}

	o.values[name] = value

	if o.hook != nil {
		o.hook.OnPropertyChanged(name, old, value)
	}

	o.dispatch(name, old, value)

	return nil
}

// AddObserver registers obs for changes of the named property. Registering
// the same handle twice has no additional effect.
func (o *Object) AddObserver(name string, obs *Observer) error {
	if obs == nil {
		return ErrNilObserver
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.properties[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}

	reg := o.observers[name]
	if reg == nil {
		reg = &registry{}
		o.observers[name] = reg
	}

	if reg.add(obs) {
		o.logger.Debug("observer added", "object_id", o.id.String(), "property", name)
		o.metrics.RecordValue(MetricObservers, float64(len(reg.entries)), map[string]string{"key": name})
	}

	return nil
}

// RemoveObserver unregisters obs from the named property. Removing an
// observer that is not registered is not an error.
func (o *Object) RemoveObserver(name string, obs *Observer) {
	if obs == nil {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	reg := o.observers[name]
	if reg == nil || !reg.remove(obs) {
		o.logger.Warn("observer not registered", "object_id", o.id.String(), "property", name)
		return
	}

	o.metrics.RecordValue(MetricObservers, float64(len(reg.entries)), map[string]string{"key": name})

	if reg.empty() {
		delete(o.observers, name)
	}
}

// Notify dispatches a change notification for the named property without
// writing it. It is the dispatch path Set uses internally, exposed so the
// notification contract can be exercised directly.
func (o *Object) Notify(name string, old, new any) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.dispatch(name, old, new)
}

// dispatch invokes every live observer of name with its declared arity.
// Callers must hold o.mu.
func (o *Object) dispatch(name string, old, new any) {
	reg := o.observers[name]
	if reg == nil {
		return
	}

	entries, swept := reg.snapshot()
	if swept > 0 {
		o.metrics.IncrementCounter(MetricObserversSweptTotal, map[string]string{"key": name})
	}
	if len(entries) == 0 {
		return
	}

	started := time.Now()
	o.logger.Debug("dispatching property change",
		"object_id", o.id.String(), "property", name, "observers", len(entries))

	for _, obs := range entries {
		obs.invoke(new, old, new)
	}

	o.metrics.RecordDuration(MetricNotifyDuration, time.Since(started), map[string]string{"key": name})
	o.metrics.IncrementCounter(MetricNotificationsTotal, map[string]string{"key": name})
}
