package kv

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T, path string) *SQLite {
	t.Helper()
	s, err := OpenSQLite(SQLiteOptions{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_RoundTripInMemory(t *testing.T) {
	s := openTestSQLite(t, ":memory:")

	_, ok, err := s.Get("country-favorites")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("country-favorites", `["FRA"]`))
	require.NoError(t, s.Set("country-favorites", `["FRA","CAN"]`))
	v, ok, err := s.Get("country-favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["FRA","CAN"]`, v)

	require.NoError(t, s.Remove("country-favorites"))
	_, ok, err = s.Get("country-favorites")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove("missing"))
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")

	first, err := OpenSQLite(SQLiteOptions{Path: path})
	require.NoError(t, err)
	require.NoError(t, first.Set("theme", "light"))
	require.NoError(t, first.Close())

	second := openTestSQLite(t, path)
	v, ok, err := second.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestSQLite_PollDeliversForeignWritesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	a := openTestSQLite(t, path)
	b := openTestSQLite(t, path)
	ctx := context.Background()

	var gotA, gotB []Change
	a.Subscribe("locale", func(c Change) { gotA = append(gotA, c) })
	b.Subscribe("locale", func(c Change) { gotB = append(gotB, c) })

	require.NoError(t, a.Set("locale", "en"))
	require.NoError(t, a.Poll(ctx))
	require.NoError(t, b.Poll(ctx))
	assert.Empty(t, gotA)
	require.Equal(t, []Change{{Key: "locale", Value: "en", Present: true}}, gotB)

	require.NoError(t, a.Remove("locale"))
	require.NoError(t, b.Poll(ctx))
	require.Len(t, gotB, 2)
	assert.Equal(t, Change{Key: "locale"}, gotB[1])

	require.NoError(t, b.Poll(ctx))
	assert.Len(t, gotB, 2, "revisions are delivered once")
}

func TestSQLite_BackgroundWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	writer := openTestSQLite(t, path)

	watcher, err := OpenSQLite(SQLiteOptions{Path: path, PollInterval: 10 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.Close() })

	var mu sync.Mutex
	var got []Change
	watcher.Subscribe("theme", func(c Change) {
		mu.Lock()
		got = append(got, c)
		mu.Unlock()
	})

	require.NoError(t, writer.Set("theme", "dark"))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1 && got[0].Value == "dark"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSQLite_ClosedHandle(t *testing.T) {
	s, err := OpenSQLite(SQLiteOptions{})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, _, err = s.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set("k", "v"), ErrClosed)
	assert.ErrorIs(t, s.Poll(context.Background()), ErrClosed)
}
