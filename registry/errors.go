package registry

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyKey      = errors.New("empty key")
	ErrIsAlias       = errors.New("key is an alias")
	ErrIsType        = errors.New("key is a registered type")
	ErrUnknownType   = errors.New("type is not registered")
	ErrAliasConflict = errors.New("alias belongs to a different type")
	ErrNotAssociated = errors.New("no such association")
	ErrNotFound      = errors.New("not found")
	ErrInconsistent  = errors.New("inconsistent snapshot")

	// ErrNoCheckpoint is returned by [Registry.Reset] when [Registry.Backup] was never called.
	ErrNoCheckpoint = errors.New("no backup to reset to")
)

// MappingError is returned when a change would break the consistency of the registry or
// when a strict query finds nothing.
// The registry is left unchanged when a MappingError is returned.
type MappingError struct {
	// Op is the name of the operation, e.g. AddTypeAlias.
	Op string

	// Key is the type, alias or extension the operation was called with.
	Key string

	// Value is the second argument of the operation, if any.
	Value string

	Err error
}

func (e *MappingError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
	}

	return fmt.Sprintf("%s %q, %q: %v", e.Op, e.Key, e.Value, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

func mappingError(op, key, value string, err error) *MappingError {
	return &MappingError{Op: op, Key: key, Value: value, Err: err}
}
