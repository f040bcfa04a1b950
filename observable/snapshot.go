package observable

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrInvalidSnapshotJSON is returned when snapshot JSON data is malformed or invalid.
	ErrInvalidSnapshotJSON = errors.New("snapshot json is not valid")

	// ErrEmptySnapshotKind is returned when an empty snapshot kind is provided.
	ErrEmptySnapshotKind = errors.New("snapshot kind must not be empty")
)

// Snapshot kinds produced by the observable containers.
const (
	SnapshotKindObject = "object"
	SnapshotKindList   = "list"
	SnapshotKindDict   = "dict"
)

// Snapshot is a point-in-time JSON capture of a container's current state.
// It carries no change history; it is the state as of TakenAt, taken under
// the instance lock so it is consistent with the notification stream.
type Snapshot struct {
	Kind    string          // which container produced it
	Source  uuid.UUID       // identity of the producing instance
	Data    json.RawMessage // serialized state as JSON
	TakenAt time.Time       // when the snapshot was taken
}

// Validate ensures the snapshot carries well-formed data.
func (s Snapshot) Validate() error {
	if s.Kind == "" {
		return ErrEmptySnapshotKind
	}

	if !jsoniter.ConfigFastest.Valid(s.Data) {
		return ErrInvalidSnapshotJSON
	}

	return nil
}

func buildSnapshot(kind string, source uuid.UUID, state any) (Snapshot, error) {
	data, err := jsoniter.ConfigFastest.Marshal(state)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshalling %s snapshot failed: %w", kind, err)
	}

	return Snapshot{
		Kind:    kind,
		Source:  source,
		Data:    data,
		TakenAt: time.Now(),
	}, nil
}

// Snapshot captures the current value of every declared property, falling
// back to declared defaults for properties never written.
func (o *Object) Snapshot() (Snapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	state := make(map[string]any, len(o.properties))
	for name, prop := range o.properties {
		if v, ok := o.values[name]; ok {
			state[name] = v
		} else {
			state[name] = prop.Default
		}
	}

	return buildSnapshot(SnapshotKindObject, o.id, state)
}

// Snapshot captures the current contents of the list.
func (l *List[T]) Snapshot() (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.items
	if items == nil {
		items = []T{}
	}

	return buildSnapshot(SnapshotKindList, l.id, items)
}

// Snapshot captures the current contents of the dictionary. The key type
// must be representable as a JSON object key.
func (d *Dict[K, V]) Snapshot() (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return buildSnapshot(SnapshotKindDict, d.id, d.data)
}
