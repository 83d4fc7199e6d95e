package audit_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oidcvault/oidcvault/internal/audit"
	"github.com/oidcvault/oidcvault/internal/events"
)

func newTestStore(t *testing.T) *audit.Store {
	t.Helper()

	store, err := audit.NewStore(filepath.Join(t.TempDir(), "audit.db"), events.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)

	store.Record("init", "", nil)
	store.Record("encrypt", "alice.config", nil)
	store.Record("decrypt", "alice.config", errors.New("decryption failed"))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "decrypt", entries[0].Op)
	assert.Equal(t, "alice.config", entries[0].File)
	assert.False(t, entries[0].Success)
	assert.Equal(t, "decryption failed", entries[0].Detail)

	assert.Equal(t, "encrypt", entries[1].Op)
	assert.True(t, entries[1].Success)
	assert.Empty(t, entries[1].Detail)

	assert.Equal(t, "init", entries[2].Op)
	assert.False(t, entries[2].Time.IsZero())
}

func TestRecentLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		store.Record("list", "", nil)
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRecentEmpty(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNilStoreIsSafe(t *testing.T) {
	var store *audit.Store

	assert.NotPanics(t, func() {
		store.Record("encrypt", "x", nil)
	})
	assert.NoError(t, store.Close())
}

func TestReopenPreservesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	store, err := audit.NewStore(path, nil)
	require.NoError(t, err)
	store.Record("init", "", nil)
	require.NoError(t, store.Close())

	store, err = audit.NewStore(path, nil)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "init", entries[0].Op)
}
