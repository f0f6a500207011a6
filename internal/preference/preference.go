// Package preference persists small user preferences, such as the name of
// the last selected wallet, across runs.
//
// Stores never return errors from Read, Write or Remove. A store whose
// backing medium is missing or broken behaves as if the key were absent and
// logs the failure instead.
package preference

import (
	"io"
	"sync"

	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// Store is a durable string key-value store.
type Store interface {
	// Read returns the stored value and true, or "" and false when absent or
	// when storage is unavailable.
	Read(key string) (string, bool)

	// Write stores value under key.
	Write(key, value string)

	// Remove deletes key. Removing a missing key is a no-op.
	Remove(key string)

	io.Closer
}

// Logger receives storage failures.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Backend names accepted by Open.
const (
	BackendFile    = "file"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
	BackendNone    = "none"
)

// Open returns the store for backend rooted at path.
func Open(backend, path string, logger Logger) (Store, error) {
	if logger == nil {
		logger = nopLogger{}
	}

	switch backend {
	case BackendFile, "":
		return NewFileStore(path, logger), nil
	case BackendLevelDB:
		store, err := OpenLevelDB(path, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendNone:
		return Unavailable{}, nil
	default:
		return nil, walleterr.WithDetails(walleterr.ErrConfigInvalid, map[string]string{
			"preference_backend": backend,
		})
	}
}

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Read implements Store.
func (m *MemoryStore) Read(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Write implements Store.
func (m *MemoryStore) Write(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Remove implements Store.
func (m *MemoryStore) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Close implements io.Closer.
func (m *MemoryStore) Close() error { return nil }

// Unavailable is the store used where no persistent medium exists. Reads
// report absence and writes are dropped.
type Unavailable struct{}

// Read implements Store.
func (Unavailable) Read(string) (string, bool) { return "", false }

// Write implements Store.
func (Unavailable) Write(string, string) {}

// Remove implements Store.
func (Unavailable) Remove(string) {}

// Close implements io.Closer.
func (Unavailable) Close() error { return nil }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
