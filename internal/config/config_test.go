package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.RequestTimeout() != 15*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout())
	}
	if cfg.CacheTTL() != 5*time.Minute || cfg.RetryDelay() != time.Second || cfg.RetryAttempts != 3 {
		t.Fatalf("cache/retry defaults = %v %v %d", cfg.CacheTTL(), cfg.RetryDelay(), cfg.RetryAttempts)
	}
	if cfg.MaxFavorites != 100 || cfg.MaxComparison != 4 {
		t.Fatalf("caps = %d/%d", cfg.MaxFavorites, cfg.MaxComparison)
	}
	if cfg.DefaultLocale != "es" || cfg.ItemsPerPage != 12 || cfg.RefreshInterval() != 0 {
		t.Fatalf("ui defaults = %q %d %v", cfg.DefaultLocale, cfg.ItemsPerPage, cfg.RefreshInterval())
	}

	wantStorage, err := expandPath(defaultStoragePath)
	if err != nil {
		t.Fatalf("expandPath(defaultStoragePath) returned error: %v", err)
	}
	if cfg.StoragePath != wantStorage {
		t.Fatalf("StoragePath = %q, want %q", cfg.StoragePath, wantStorage)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "  http://localhost:8080/v3.1  "
request_timeout_ms = 2500
retry_attempts = 0
max_comparison = 3
default_locale = " EN "
storage_path = "  ~/.atlas/prefs.db  "
refresh_interval_minutes = 30
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080/v3.1" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout() != 2500*time.Millisecond {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout())
	}
	if cfg.RetryAttempts != 0 {
		t.Fatalf("RetryAttempts = %d, want 0 (retries disabled)", cfg.RetryAttempts)
	}
	if cfg.MaxComparison != 3 || cfg.MaxFavorites != defaultMaxFavorites {
		t.Fatalf("caps = %d/%d", cfg.MaxFavorites, cfg.MaxComparison)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("DefaultLocale = %q", cfg.DefaultLocale)
	}
	if !strings.HasPrefix(cfg.StoragePath, home) {
		t.Fatalf("StoragePath = %q, want it under HOME %q", cfg.StoragePath, home)
	}
	if cfg.RefreshInterval() != 30*time.Minute {
		t.Fatalf("RefreshInterval = %v", cfg.RefreshInterval())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("cache_ttl_minutes = 10\nlog_level = \"warn\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("ATLAS_CACHE_TTL_MINUTES", "1")
	t.Setenv("ATLAS_MAX_FAVORITES", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CacheTTLMinutes != 1 {
		t.Fatalf("CacheTTLMinutes = %d, want env value 1", cfg.CacheTTLMinutes)
	}
	if cfg.MaxFavorites != 7 {
		t.Fatalf("MaxFavorites = %d, want 7", cfg.MaxFavorites)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want file value", cfg.LogLevel)
	}
}

func TestLoad_InvalidEnvFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ATLAS_RETRY_ATTEMPTS", "many")

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Fatalf("Load error = %v, want parse env error", err)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "   "
request_timeout_ms = -5
items_per_page = 0
storage_path = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	def := Default()
	if cfg.APIBaseURL != def.APIBaseURL || cfg.RequestTimeoutMS != def.RequestTimeoutMS || cfg.ItemsPerPage != def.ItemsPerPage {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if cfg.StoragePath != def.StoragePath {
		t.Fatalf("StoragePath = %q, want %q", cfg.StoragePath, def.StoragePath)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
