// Package storage provides the durable key/value store that backs the
// persisted UI state. It plays the role a browser's local storage would:
// string keys, string values, read at startup and rewritten on change.
package storage

import (
	"fmt"
	"os"
)

// Backend is a string-keyed store of string values.
type Backend interface {
	// Get returns the value for key. ok is false when the key was never set.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Kinds lists the accepted backend names.
var Kinds = []string{KindFile, KindSQLite, KindMemory}

// Open returns the backend named kind rooted at dir.
func Open(kind, dir string) (Backend, error) {
	switch kind {
	case KindMemory:
		return NewMemoryBackend(), nil
	case KindFile, KindSQLite:
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	if kind == KindSQLite {
		return NewSQLiteBackend(dir)
	}
	return NewFileBackend(dir)
}

// MemoryBackend keeps everything in process. Nothing survives a restart.
type MemoryBackend struct {
	data map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
