package recent

import (
	"errors"
	"fmt"
)

const (
	OpLoad   = "load"
	OpEncode = "encode"
	OpSave   = "save"
)

// ErrPersistence matches every *PersistenceError via errors.Is.
var ErrPersistence = errors.New("recent: persistence failure")

// PersistenceError reports a failed read or write against the backing store.
// The in-memory list of the cache that returned it is still authoritative.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("recent: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
