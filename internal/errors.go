package internal

import (
	"errors"
	"fmt"
)

// ErrKeyMissing indicates one of the well-known keys is absent from the
// store. Callers treat the keyspace as empty; a workspace legitimately may
// have no prompts yet.
var ErrKeyMissing = errors.New("key not found in store")

// StoreError represents a failure to open or read the backing database.
// Open failures are fatal: a missing database is a configuration error,
// not a transient fault.
type StoreError struct {
	Path string
	Op   string // "open", "ping", "query"
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ParseError represents an error decoding a keyspace payload
type ParseError struct {
	Keyspace Keyspace
	Key      string // store key the payload came from
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Keyspace, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during document export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
