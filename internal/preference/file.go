package preference

import (
	"errors"
	"os"
	"sync"

	"github.com/mrz1836/suiwallet/internal/fileutil"
)

// filePermissions is the mode for the preferences file.
const filePermissions = 0o600

// FileStore keeps preferences in a single JSON object on disk.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger Logger
}

// NewFileStore creates a store backed by the JSON file at path. The file is
// created on first write.
func NewFileStore(path string, logger Logger) *FileStore {
	if logger == nil {
		logger = nopLogger{}
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Read implements Store.
func (f *FileStore) Read(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.load()[key]
	return v, ok
}

// Write implements Store.
func (f *FileStore) Write(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := f.load()
	if cur, ok := values[key]; ok && cur == value {
		return
	}
	values[key] = value
	f.save(values)
}

// Remove implements Store.
func (f *FileStore) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := f.load()
	if _, ok := values[key]; !ok {
		return
	}
	delete(values, key)
	f.save(values)
}

// Close implements io.Closer.
func (f *FileStore) Close() error { return nil }

// load reads the file. A missing or unreadable file yields an empty map.
func (f *FileStore) load() map[string]string {
	values := make(map[string]string)
	if f.path == "" {
		return values
	}

	err := fileutil.ReadJSON(f.path, &values)
	switch {
	case err == nil:
		if values == nil {
			values = make(map[string]string)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		f.logger.Error("preference: reading %s: %v", f.path, err)
		values = make(map[string]string)
	}
	return values
}

func (f *FileStore) save(values map[string]string) {
	if f.path == "" {
		f.logger.Debug("preference: no file configured, dropping write")
		return
	}
	if err := fileutil.WriteJSON(f.path, values, filePermissions); err != nil {
		f.logger.Error("preference: writing %s: %v", f.path, err)
	}
}
