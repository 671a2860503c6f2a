package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sessions.db"), "test")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGet(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Set("spam", "eggs"))
	v, ok, err := s.Get("spam")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "eggs", v)
}

func TestGetMissing(t *testing.T) {
	s := openStore(t)

	_, ok, err := s.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiredEntryIsMissAndEvicted(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.SetTTL("tok", "value", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, ok, err := s.Get("tok")
	require.NoError(t, err)
	assert.False(t, ok)

	// The stale entry is gone, not just hidden.
	_, ok, err = s.Get("tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetResetsExpiry(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.SetTTL("tok", "old", time.Millisecond))
	require.NoError(t, s.SetTTL("tok", "new", time.Minute))
	time.Sleep(10 * time.Millisecond)

	v, ok, err := s.Get("tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestDelete(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Delete("k"))

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	s, err := Open(path, "test")
	require.NoError(t, err)
	require.NoError(t, s.Set("tok", "persisted"))
	require.NoError(t, s.Close())

	s, err = Open(path, "test")
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)
}

func TestBucketsAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	a, err := Open(path, "app-a")
	require.NoError(t, err)
	require.NoError(t, a.Set("k", "from-a"))
	require.NoError(t, a.Close())

	b, err := Open(path, "app-b")
	require.NoError(t, err)
	defer b.Close()

	_, ok, err := b.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
