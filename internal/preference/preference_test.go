package preference_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/preference"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

const key = "preferredSuiWallet"

// recordingLogger captures logged errors.
type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (r *recordingLogger) Debug(string, ...any) {}

func (r *recordingLogger) Error(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

func openStores(t *testing.T) map[string]preference.Store {
	t.Helper()
	dir := t.TempDir()

	ldb, err := preference.OpenLevelDB(filepath.Join(dir, "prefs.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ldb.Close() })

	return map[string]preference.Store{
		"file":    preference.NewFileStore(filepath.Join(dir, "prefs.json"), nil),
		"leveldb": ldb,
		"memory":  preference.NewMemoryStore(),
	}
}

func TestStores_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := store.Read(key)
			assert.False(t, ok)

			store.Write(key, "A")
			v, ok := store.Read(key)
			require.True(t, ok)
			assert.Equal(t, "A", v)

			store.Write(key, "B")
			v, _ = store.Read(key)
			assert.Equal(t, "B", v)

			store.Remove(key)
			_, ok = store.Read(key)
			assert.False(t, ok)

			// Removing again is a no-op.
			store.Remove(key)
		})
	}
}

func TestStores_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			store.Write("a", "1")
			store.Write("b", "2")
			store.Remove("a")

			_, ok := store.Read("a")
			assert.False(t, ok)
			v, ok := store.Read("b")
			require.True(t, ok)
			assert.Equal(t, "2", v)
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	preference.NewFileStore(path, nil).Write(key, "Suiet")

	v, ok := preference.NewFileStore(path, nil).Read(key)
	require.True(t, ok)
	assert.Equal(t, "Suiet", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFileReadsAsAbsent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o600))

	logger := &recordingLogger{}
	store := preference.NewFileStore(path, logger)

	_, ok := store.Read(key)
	assert.False(t, ok)
	assert.Equal(t, 1, logger.count())

	// A write repairs the file.
	store.Write(key, "Sui Wallet")
	v, ok := store.Read(key)
	require.True(t, ok)
	assert.Equal(t, "Sui Wallet", v)
}

func TestFileStore_UnwritableLocationDoesNotFail(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	logger := &recordingLogger{}
	store := preference.NewFileStore(filepath.Join(blocker, "prefs.json"), logger)

	store.Write(key, "Sui Wallet")
	_, ok := store.Read(key)
	assert.False(t, ok)
	assert.Positive(t, logger.count())
}

func TestFileStore_EmptyPath(t *testing.T) {
	t.Parallel()
	store := preference.NewFileStore("", nil)

	store.Write(key, "Sui Wallet")
	_, ok := store.Read(key)
	assert.False(t, ok)
}

func TestLevelDBStore_ClosedBehavesUnavailable(t *testing.T) {
	t.Parallel()

	store, err := preference.OpenLevelDB(filepath.Join(t.TempDir(), "prefs.db"), nil)
	require.NoError(t, err)
	store.Write(key, "Sui Wallet")
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, ok := store.Read(key)
	assert.False(t, ok)
	store.Write(key, "ignored")
	store.Remove(key)
}

func TestLevelDBStore_Reopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prefs.db")

	store, err := preference.OpenLevelDB(path, nil)
	require.NoError(t, err)
	store.Write(key, "Ethos Wallet")
	require.NoError(t, store.Close())

	reopened, err := preference.OpenLevelDB(path, nil)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	v, ok := reopened.Read(key)
	require.True(t, ok)
	assert.Equal(t, "Ethos Wallet", v)
}

func TestUnavailable(t *testing.T) {
	t.Parallel()
	var store preference.Store = preference.Unavailable{}

	store.Write(key, "A")
	_, ok := store.Read(key)
	assert.False(t, ok)
	store.Remove(key)
	assert.NoError(t, store.Close())
}

func TestOpen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	store, err := preference.Open(preference.BackendFile, filepath.Join(dir, "p.json"), nil)
	require.NoError(t, err)
	assert.IsType(t, &preference.FileStore{}, store)

	store, err = preference.Open("", filepath.Join(dir, "p.json"), nil)
	require.NoError(t, err)
	assert.IsType(t, &preference.FileStore{}, store)

	store, err = preference.Open(preference.BackendMemory, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &preference.MemoryStore{}, store)

	store, err = preference.Open(preference.BackendNone, "", nil)
	require.NoError(t, err)
	assert.IsType(t, preference.Unavailable{}, store)

	store, err = preference.Open(preference.BackendLevelDB, filepath.Join(dir, "p.db"), nil)
	require.NoError(t, err)
	assert.IsType(t, &preference.LevelDBStore{}, store)
	require.NoError(t, store.Close())

	_, err = preference.Open("redis", "", nil)
	require.ErrorIs(t, err, walleterr.ErrConfigInvalid)
}

func TestOpen_LevelDBFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := preference.Open(preference.BackendLevelDB, filepath.Join(blocker, "p.db"), nil)
	require.ErrorIs(t, err, walleterr.ErrPreferenceUnavailable)
}
