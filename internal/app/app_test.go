package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresComponentsAndCloses(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	metricsPath := filepath.Join(home, "atlas.prom")
	t.Setenv("ATLAS_METRICS_FILE", metricsPath)
	t.Setenv("ATLAS_MAX_COMPARISON", "3")

	a, err := New(Options{
		StoragePath: filepath.Join(home, "state", "prefs.db"),
		Locale:      "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "en", a.Locale.Code())
	assert.Equal(t, 3, a.Comparison.Max())
	assert.Equal(t, 100, a.Favorites.Max())
	assert.False(t, a.Store.Loading())
	assert.Zero(t, a.Client.CacheStats().Size)

	require.NoError(t, a.Close())

	_, err = os.Stat(metricsPath)
	assert.NoError(t, err, "metrics file written on close")
	_, err = os.Stat(filepath.Join(home, ".local", "share", "atlas", "atlas.log"))
	assert.NoError(t, err, "log file created under home")
}

func TestNew_PersistsLocaleAcrossRestarts(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	storage := filepath.Join(home, "prefs.db")

	a, err := New(Options{StoragePath: storage, Locale: "en"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(Options{StoragePath: storage})
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, "en", b.Locale.Code())
}

func TestNew_InvalidConfigFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("cache_ttl_minutes = ["), 0o644))

	_, err := New(Options{ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
