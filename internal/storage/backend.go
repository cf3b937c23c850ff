// Package storage provides the durable key-value backends the task store
// writes through to.
package storage

import "errors"

// Backend is a durable key-value record store
type Backend interface {
	// Name returns the backend identifier (e.g., "sqlite", "file")
	Name() string

	// Read returns the value stored under key; ok is false when the key is absent
	Read(key string) (value []byte, ok bool, err error)

	// Write replaces the value stored under key
	Write(key string, value []byte) error

	// Close releases any handles held by the backend
	Close() error
}

// Factory opens a backend rooted at path. Backends that keep nothing on
// disk ignore path.
type Factory func(path string) (Backend, error)

// ErrUnknownBackend is returned when a backend name has no registered factory
var ErrUnknownBackend = errors.New("unknown storage backend")

// ErrInvalidKey is returned for keys a backend cannot address
var ErrInvalidKey = errors.New("invalid storage key")
