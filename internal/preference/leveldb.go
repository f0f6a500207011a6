package preference

import (
	"errors"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// LevelDBStore keeps preferences in a LevelDB database.
type LevelDBStore struct {
	mu     sync.Mutex
	db     *leveldb.DB
	logger Logger
}

// OpenLevelDB opens or creates the database directory at path.
func OpenLevelDB(path string, logger Logger) (*LevelDBStore, error) {
	if logger == nil {
		logger = nopLogger{}
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrPreferenceUnavailable, "opening %s: %v", path, err)
	}
	return &LevelDBStore{db: db, logger: logger}, nil
}

// Read implements Store.
func (l *LevelDBStore) Read(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return "", false
	}
	v, err := l.db.Get([]byte(key), nil)
	if err != nil {
		if !errors.Is(err, leveldb.ErrNotFound) {
			l.logger.Error("preference: leveldb get %q: %v", key, err)
		}
		return "", false
	}
	return string(v), true
}

// Write implements Store.
func (l *LevelDBStore) Write(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return
	}
	if err := l.db.Put([]byte(key), []byte(value), nil); err != nil {
		l.logger.Error("preference: leveldb put %q: %v", key, err)
	}
}

// Remove implements Store.
func (l *LevelDBStore) Remove(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return
	}
	if err := l.db.Delete([]byte(key), nil); err != nil {
		l.logger.Error("preference: leveldb delete %q: %v", key, err)
	}
}

// Close releases the database. Later calls behave like Unavailable.
func (l *LevelDBStore) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
