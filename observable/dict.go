package observable

import (
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/NixonInnes/gosmorg/observable/internal/relock"
)

// DictModificationType classifies how a Dict was mutated.
type DictModificationType int

const (
	DictModificationAll DictModificationType = iota
	DictModificationUpdated
	DictModificationExtend
	DictModificationRemove
	DictModificationClear
)

var dictModificationNames = [...]string{
	DictModificationAll:     "all",
	DictModificationUpdated: "updated",
	DictModificationExtend:  "extend",
	DictModificationRemove:  "remove",
	DictModificationClear:   "clear",
}

func (t DictModificationType) String() string {
	if !t.valid() {
		return fmt.Sprintf("DictModificationType(%d)", int(t))
	}
	return dictModificationNames[t]
}

func (t DictModificationType) valid() bool {
	return t >= DictModificationAll && t <= DictModificationClear
}

// DictChange is the mutation payload delivered to one-argument observers.
type DictChange[K comparable, V any] struct {
	Kind    DictModificationType
	Entries map[K]V // entries the mutation set, merged, or removed
}

// Dict is a thread-safe observable map with the same lock-and-notify
// discipline as List: mutations classify into exactly one
// DictModificationType and notify the catch-all registry before the
// type-specific one, reads never notify, and failed mutations fire nothing.
type Dict[K comparable, V any] struct {
	id uuid.UUID
	mu relock.Mutex

	data      map[K]V
	observers map[DictModificationType]*registry

	logger  Logger
	metrics MetricsCollector
}

// NewDict creates an observable dictionary seeded with a copy of initial.
func NewDict[K comparable, V any](initial map[K]V, opts ...Option) (*Dict[K, V], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	d := &Dict[K, V]{
		id:        uuid.New(),
		data:      make(map[K]V, len(initial)),
		observers: make(map[DictModificationType]*registry),
		logger:    cfg.logger,
		metrics:   cfg.metrics,
	}
	maps.Copy(d.data, initial)

	return d, nil
}

// ID returns the instance identity used in log fields and snapshots.
func (d *Dict[K, V]) ID() uuid.UUID {
	return d.id
}

// AddObserver registers obs for the given modification types, defaulting to
// DictModificationAll when none are given. The catch-all and type-specific
// registries are independent.
func (d *Dict[K, V]) AddObserver(obs *Observer, types ...DictModificationType) error {
	if obs == nil {
		return ErrNilObserver
	}
	if len(types) == 0 {
		types = []DictModificationType{DictModificationAll}
	}

	for _, t := range types {
		if !t.valid() {
			return fmt.Errorf("%w: %d", ErrInvalidModificationType, int(t))
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, t := range types {
		reg := d.observers[t]
		if reg == nil {
			reg = &registry{}
			d.observers[t] = reg
		}
		if reg.add(obs) {
			d.logger.Debug("observer added", "dict_id", d.id.String(), "modification_type", t.String())
			d.metrics.RecordValue(MetricObservers, float64(len(reg.entries)), map[string]string{"key": t.String()})
		}
	}

	return nil
}

// RemoveObserver unregisters obs from the given modification types,
// defaulting to DictModificationAll. Removing an observer that is not
// registered is not an error.
func (d *Dict[K, V]) RemoveObserver(obs *Observer, types ...DictModificationType) {
	if obs == nil {
		return
	}
	if len(types) == 0 {
		types = []DictModificationType{DictModificationAll}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, t := range types {
		reg := d.observers[t]
		if reg == nil || !reg.remove(obs) {
			d.logger.Warn("observer not registered", "dict_id", d.id.String(), "modification_type", t.String())
			continue
		}
		d.metrics.RecordValue(MetricObservers, float64(len(reg.entries)), map[string]string{"key": t.String()})
		if reg.empty() {
			delete(d.observers, t)
		}
	}
}

// Set writes key to value. Overwrites notify the same as fresh inserts.
func (d *Dict[K, V]) Set(key K, value V) {
	d.mu.Lock()
	defer d.mu.Unlock()

	before := d.beforeSnapshot()
	d.data[key] = value

	d.notify(DictChange[K, V]{Kind: DictModificationUpdated, Entries: map[K]V{key: value}}, before)
}

// Delete removes key. Deleting an absent key returns ErrKeyNotFound and
// fires nothing.
func (d *Dict[K, V]) Delete(key K) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	value, ok := d.data[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	before := d.beforeSnapshot()
	delete(d.data, key)

	d.notify(DictChange[K, V]{Kind: DictModificationRemove, Entries: map[K]V{key: value}}, before)

	return nil
}

// Pop removes and returns the value stored under key. When the key is
// absent, the zero value and false are returned and nothing fires.
func (d *Dict[K, V]) Pop(key K) (V, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	value, ok := d.data[key]
	if !ok {
		var zero V
		return zero, false
	}

	before := d.beforeSnapshot()
	delete(d.data, key)

	d.notify(DictChange[K, V]{Kind: DictModificationRemove, Entries: map[K]V{key: value}}, before)

	return value, true
}

// Merge copies all entries of other into the dictionary, classified as a
// single extend. Merging an empty map still notifies.
func (d *Dict[K, V]) Merge(other map[K]V) {
	d.mu.Lock()
	defer d.mu.Unlock()

	before := d.beforeSnapshot()
	maps.Copy(d.data, other)

	merged := make(map[K]V, len(other))
	maps.Copy(merged, other)

	d.notify(DictChange[K, V]{Kind: DictModificationExtend, Entries: merged}, before)
}

// Clear removes all entries.
func (d *Dict[K, V]) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	before := d.beforeSnapshot()

	removed := d.data
	d.data = make(map[K]V)

	d.notify(DictChange[K, V]{Kind: DictModificationClear, Entries: removed}, before)
}

// Get returns the value stored under key.
func (d *Dict[K, V]) Get(key K) (V, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	value, ok := d.data[key]
	return value, ok
}

// Len returns the number of entries.
func (d *Dict[K, V]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.data)
}

// Items returns a copy of the current contents.
func (d *Dict[K, V]) Items() map[K]V {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[K]V, len(d.data))
	maps.Copy(out, d.data)

	return out
}

// beforeSnapshot copies the current contents if any two-argument observer
// would need a before/after pair. Callers must hold d.mu.
func (d *Dict[K, V]) beforeSnapshot() map[K]V {
	need := false
	for _, reg := range d.observers {
		if reg.hasOldNew() {
			need = true
			break
		}
	}
	if !need {
		return nil
	}

	snapshot := make(map[K]V, len(d.data))
	maps.Copy(snapshot, d.data)

	return snapshot
}

// notify dispatches change to the catch-all registry first, then to the
// registry of the change's own type. Callers must hold d.mu.
func (d *Dict[K, V]) notify(change DictChange[K, V], before map[K]V) {
	var after map[K]V
	if before != nil {
		after = make(map[K]V, len(d.data))
		maps.Copy(after, d.data)
	}

	started := time.Now()
	dispatched := 0

	for _, t := range [...]DictModificationType{DictModificationAll, change.Kind} {
		reg := d.observers[t]
		if reg == nil {
			continue
		}

		entries, swept := reg.snapshot()
		if swept > 0 {
			d.metrics.IncrementCounter(MetricObserversSweptTotal, map[string]string{"key": t.String()})
		}

		for _, obs := range entries {
			obs.invoke(change, before, after)
		}
		dispatched += len(entries)
	}

	if dispatched > 0 {
		labels := map[string]string{"key": change.Kind.String()}
		d.metrics.RecordDuration(MetricNotifyDuration, time.Since(started), labels)
		d.metrics.IncrementCounter(MetricNotificationsTotal, labels)
	}
}
