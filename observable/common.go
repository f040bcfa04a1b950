package observable

import (
	"errors"
)

var (
	// ErrUnknownProperty is returned when an observer is registered against,
	// or a value is read from / written to, a property that was never
	// declared on the object.
	ErrUnknownProperty = errors.New("unknown observable property")

	// ErrEmptyPropertyName is returned when a property is declared without a name.
	ErrEmptyPropertyName = errors.New("empty property name supplied")

	// ErrDuplicateProperty is returned when two properties with the same name
	// are declared on one object.
	ErrDuplicateProperty = errors.New("duplicate property declaration")

	// ErrNilObserver is returned when a nil observer handle is registered or removed.
	ErrNilObserver = errors.New("nil observer supplied")

	// ErrInvalidModificationType is returned when an observer is registered
	// against a modification type the container does not know.
	ErrInvalidModificationType = errors.New("invalid modification type")

	// ErrIndexOutOfRange is returned by sequence mutations addressing an
	// index outside the current bounds. No notification fires.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrItemNotFound is returned by value-based removal when no element
	// matches. No notification fires.
	ErrItemNotFound = errors.New("item not found")

	// ErrKeyNotFound is returned by dictionary deletion of an absent key.
	ErrKeyNotFound = errors.New("key not found")
)
