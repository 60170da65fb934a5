package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
)

func TestStorePutGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	entry := Entry{Stars: 5.43, MaxCombo: 912}
	require.NoError(t, store.Put("deadbeef", beatmap.ModeOsu, difficulty.Hidden, entry))

	got, ok, err := store.Get("deadbeef", beatmap.ModeOsu, difficulty.Hidden)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry, got)
}

func TestStoreMissReturnsFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get("unknown", beatmap.ModeOsu, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorePutReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put("x", beatmap.ModeOsu, 0, Entry{Stars: 1, MaxCombo: 1}))
	require.NoError(t, store.Put("x", beatmap.ModeOsu, 0, Entry{Stars: 2, MaxCombo: 2}))

	got, ok, err := store.Get("x", beatmap.ModeOsu, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2.0, got.Stars)
}
