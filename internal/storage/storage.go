// Package storage is the key-value layer the user collection lives in.
// Every value carries a version; writes are compare-and-set against it.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("key not found")
	ErrStale       = errors.New("stale version")
	ErrUnavailable = errors.New("storage unavailable")

	errClosed = errors.New("store closed")
)

type Entry struct {
	Value   []byte
	Version int64
}

// Store is implemented by the memory, postgres and sqlite backends.
type Store interface {
	// Get returns ErrNotFound when the key was never written.
	Get(ctx context.Context, key string) (Entry, error)
	// Set writes value only if the stored version equals expected (0 = key absent)
	// and returns the new version. A mismatch yields ErrStale.
	Set(ctx context.Context, key string, value []byte, expected int64) (int64, error)
	Close() error
}

// Error wraps a backend failure. It matches ErrUnavailable via errors.Is.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrUnavailable }

// Wrap turns a backend error into *Error. nil, ErrNotFound and ErrStale pass through.
func Wrap(op, key string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrStale) {
		return err
	}
	return &Error{Op: op, Key: key, Err: err}
}
