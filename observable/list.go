package observable

import (
	"fmt"
	"iter"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/NixonInnes/gosmorg/observable/internal/relock"
)

// ListModificationType classifies how a List was mutated. Observers may
// subscribe to one specific type or to ListModificationAll, the catch-all
// key that receives every mutation.
type ListModificationType int

const (
	ListModificationAll ListModificationType = iota
	ListModificationAppend
	ListModificationExtend
	ListModificationInsert
	ListModificationRemove
	ListModificationUpdate
	ListModificationClear
)

var listModificationNames = [...]string{
	ListModificationAll:    "all",
	ListModificationAppend: "append",
	ListModificationExtend: "extend",
	ListModificationInsert: "insert",
	ListModificationRemove: "remove",
	ListModificationUpdate: "update",
	ListModificationClear:  "clear",
}

func (t ListModificationType) String() string {
	if !t.valid() {
		return fmt.Sprintf("ListModificationType(%d)", int(t))
	}
	return listModificationNames[t]
}

func (t ListModificationType) valid() bool {
	return t >= ListModificationAll && t <= ListModificationClear
}

// ListChange is the mutation payload delivered to one-argument observers.
type ListChange[T any] struct {
	Kind  ListModificationType
	Index int // position the mutation touched, -1 when not applicable
	Items []T // elements the mutation added, removed, or replaced with
}

// List is a thread-safe observable ordered sequence. Every mutating
// operation acquires the instance's re-entrant lock, applies the mutation to
// the backing slice, classifies it into exactly one ListModificationType,
// and notifies the catch-all registry followed by the type-specific one. A
// failed mutation (index out of range, item not found) returns an error and
// fires nothing.
//
// Read operations never notify. They do take the instance lock - the Go
// memory model offers no safe unsynchronized reads - and the lock's
// re-entrancy keeps reads from inside notification callbacks deadlock-free.
type List[T any] struct {
	id uuid.UUID
	mu relock.Mutex

	items     []T
	observers map[ListModificationType]*registry

	logger  Logger
	metrics MetricsCollector
}

// NewList creates an observable list seeded with a copy of initial.
func NewList[T any](initial []T, opts ...Option) (*List[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	l := &List[T]{
		id:        uuid.New(),
		items:     append([]T(nil), initial...),
		observers: make(map[ListModificationType]*registry),
		logger:    cfg.logger,
		metrics:   cfg.metrics,
	}

	return l, nil
}

// ID returns the instance identity used in log fields and snapshots.
func (l *List[T]) ID() uuid.UUID {
	return l.id
}

// AddObserver registers obs for the given modification types, defaulting to
// ListModificationAll when none are given. The catch-all and type-specific
// registries are independent: registering for All does not register for any
// specific type. Registering the same handle twice under one type has no
// additional effect.
func (l *List[T]) AddObserver(obs *Observer, types ...ListModificationType) error {
	if obs == nil {
		return ErrNilObserver
	}
	if len(types) == 0 {
		types = []ListModificationType{ListModificationAll}
	}

	for _, t := range types {
		if !t.valid() {
			return fmt.Errorf("%w: %d", ErrInvalidModificationType, int(t))
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range types {
		reg := l.observers[t]
		if reg == nil {
			reg = &registry{}
			l.observers[t] = reg
		}
		if reg.add(obs) {
			l.logger.Debug("observer added", "list_id", l.id.String(), "modification_type", t.String())
			l.metrics.RecordValue(MetricObservers, float64(len(reg.entries)), map[string]string{"key": t.String()})
		}
	}

	return nil
}

// RemoveObserver unregisters obs from the given modification types,
// defaulting to ListModificationAll. Removing from All leaves type-specific
// registrations intact and vice versa. Removing an observer that is not
// registered is not an error.
func (l *List[T]) RemoveObserver(obs *Observer, types ...ListModificationType) {
	if obs == nil {
		return
	}
	if len(types) == 0 {
		types = []ListModificationType{ListModificationAll}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range types {
		reg := l.observers[t]
		if reg == nil || !reg.remove(obs) {
			l.logger.Warn("observer not registered", "list_id", l.id.String(), "modification_type", t.String())
			continue
		}
		l.metrics.RecordValue(MetricObservers, float64(len(reg.entries)), map[string]string{"key": t.String()})
		if reg.empty() {
			delete(l.observers, t)
		}
	}
}

// Append adds item to the end of the list.
func (l *List[T]) Append(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.beforeSnapshot()
	l.items = append(l.items, item)

	l.notify(ListChange[T]{Kind: ListModificationAppend, Index: len(l.items) - 1, Items: []T{item}}, before)
}

// Extend appends all items to the end of the list. Extending with nothing
// still counts as a mutation and notifies, matching the unconditional-write
// contract of property sets.
func (l *List[T]) Extend(items ...T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.beforeSnapshot()
	index := len(l.items)
	l.items = append(l.items, items...)

	l.notify(ListChange[T]{Kind: ListModificationExtend, Index: index, Items: items}, before)
}

// Insert places item at index i, shifting later elements right.
// i may equal Len(), which appends - but still classifies as an insert.
func (l *List[T]) Insert(i int, item T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || i > len(l.items) {
		return fmt.Errorf("%w: insert at %d with length %d", ErrIndexOutOfRange, i, len(l.items))
	}

	before := l.beforeSnapshot()
	l.items = append(l.items, *new(T))
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = item

	l.notify(ListChange[T]{Kind: ListModificationInsert, Index: i, Items: []T{item}}, before)

	return nil
}

// Remove deletes the first element equal to item (reflect.DeepEqual).
func (l *List[T]) Remove(item T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if reflect.DeepEqual(l.items[i], item) {
			l.removeAt(i)
			return nil
		}
	}

	return fmt.Errorf("%w: %v", ErrItemNotFound, item)
}

// RemoveAt deletes and returns the element at index i.
func (l *List[T]) RemoveAt(i int) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, fmt.Errorf("%w: remove at %d with length %d", ErrIndexOutOfRange, i, len(l.items))
	}

	return l.removeAt(i), nil
}

// Pop deletes and returns the last element.
func (l *List[T]) Pop() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	if len(l.items) == 0 {
		return zero, fmt.Errorf("%w: pop from empty list", ErrIndexOutOfRange)
	}

	return l.removeAt(len(l.items) - 1), nil
}

// removeAt performs the removal and notification for a validated index.
// Callers must hold l.mu.
func (l *List[T]) removeAt(i int) T {
	before := l.beforeSnapshot()

	item := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)

	l.notify(ListChange[T]{Kind: ListModificationRemove, Index: i, Items: []T{item}}, before)

	return item
}

// Set replaces the element at index i.
func (l *List[T]) Set(i int, item T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: set at %d with length %d", ErrIndexOutOfRange, i, len(l.items))
	}

	before := l.beforeSnapshot()
	l.items[i] = item

	l.notify(ListChange[T]{Kind: ListModificationUpdate, Index: i, Items: []T{item}}, before)

	return nil
}

// ReplaceRange replaces the elements in [i, j) with items, growing or
// shrinking the list as needed.
func (l *List[T]) ReplaceRange(i, j int, items ...T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || j < i || j > len(l.items) {
		return fmt.Errorf("%w: replace range [%d, %d) with length %d", ErrIndexOutOfRange, i, j, len(l.items))
	}

	before := l.beforeSnapshot()

	tail := append([]T(nil), l.items[j:]...)
	l.items = append(l.items[:i], items...)
	l.items = append(l.items, tail...)

	l.notify(ListChange[T]{Kind: ListModificationUpdate, Index: i, Items: items}, before)

	return nil
}

// Clear removes all elements.
func (l *List[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.beforeSnapshot()

	removed := l.items
	l.items = nil

	l.notify(ListChange[T]{Kind: ListModificationClear, Index: -1, Items: removed}, before)
}

// Reverse reverses the list in place. Classified as an update.
func (l *List[T]) Reverse() {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.beforeSnapshot()

	for i, j := 0, len(l.items)-1; i < j; i, j = i+1, j-1 {
		l.items[i], l.items[j] = l.items[j], l.items[i]
	}

	l.notify(ListChange[T]{Kind: ListModificationUpdate, Index: -1}, before)
}

// Sort sorts the list in place using less. Classified as an update.
func (l *List[T]) Sort(less func(a, b T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.beforeSnapshot()

	sort.SliceStable(l.items, func(i, j int) bool { return less(l.items[i], l.items[j]) })

	l.notify(ListChange[T]{Kind: ListModificationUpdate, Index: -1}, before)
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.items)
}

// Get returns the element at index i.
func (l *List[T]) Get(i int) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, fmt.Errorf("%w: get at %d with length %d", ErrIndexOutOfRange, i, len(l.items))
	}

	return l.items[i], nil
}

// Items returns a copy of the current contents.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]T(nil), l.items...)
}

// All iterates over a point-in-time copy of the contents.
func (l *List[T]) All() iter.Seq2[int, T] {
	items := l.Items()

	return func(yield func(int, T) bool) {
		for i, item := range items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// beforeSnapshot copies the current contents if any two-argument observer
// would need a before/after pair, and returns nil otherwise so the common
// case pays nothing. Callers must hold l.mu.
func (l *List[T]) beforeSnapshot() []T {
	need := false
	for _, reg := range l.observers {
		if reg.hasOldNew() {
			need = true
			break
		}
	}
	if !need {
		return nil
	}

	snapshot := append([]T(nil), l.items...)
	if snapshot == nil {
		snapshot = []T{}
	}

	return snapshot
}

// notify dispatches change to the catch-all registry first, then to the
// registry of the change's own type. Exactly one catch-all notification and
// at most one type-specific notification fire per mutation. Callers must
// hold l.mu.
func (l *List[T]) notify(change ListChange[T], before []T) {
	var after []T
	if before != nil {
		after = append([]T(nil), l.items...)
		if after == nil {
			after = []T{}
		}
	}

	started := time.Now()
	dispatched := 0

	for _, t := range [...]ListModificationType{ListModificationAll, change.Kind} {
		reg := l.observers[t]
		if reg == nil {
			continue
		}

		entries, swept := reg.snapshot()
		if swept > 0 {
			l.metrics.IncrementCounter(MetricObserversSweptTotal, map[string]string{"key": t.String()})
		}

		for _, obs := range entries {
			obs.invoke(change, before, after)
		}
		dispatched += len(entries)
	}

	if dispatched > 0 {
		labels := map[string]string{"key": change.Kind.String()}
		l.metrics.RecordDuration(MetricNotifyDuration, time.Since(started), labels)
		l.metrics.IncrementCounter(MetricNotificationsTotal, labels)
	}
}
