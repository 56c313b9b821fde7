package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds every tunable of the explorer.
type Config struct {
	APIBaseURL             string `toml:"api_base_url" env:"API_BASE_URL"`
	RequestTimeoutMS       int    `toml:"request_timeout_ms" env:"REQUEST_TIMEOUT_MS"`
	CacheTTLMinutes        int    `toml:"cache_ttl_minutes" env:"CACHE_TTL_MINUTES"`
	CacheMaxEntries        int    `toml:"cache_max_entries" env:"CACHE_MAX_ENTRIES"`
	RetryAttempts          int    `toml:"retry_attempts" env:"RETRY_ATTEMPTS"`
	RetryDelayMS           int    `toml:"retry_delay_ms" env:"RETRY_DELAY_MS"`
	MaxFavorites           int    `toml:"max_favorites" env:"MAX_FAVORITES"`
	MaxComparison          int    `toml:"max_comparison" env:"MAX_COMPARISON"`
	DefaultLocale          string `toml:"default_locale" env:"DEFAULT_LOCALE"`
	StoragePath            string `toml:"storage_path" env:"STORAGE_PATH"`
	LogLevel               string `toml:"log_level" env:"LOG_LEVEL"`
	LogFile                string `toml:"log_file" env:"LOG_FILE"`
	RefreshIntervalMinutes int    `toml:"refresh_interval_minutes" env:"REFRESH_INTERVAL_MINUTES"`
	ItemsPerPage           int    `toml:"items_per_page" env:"ITEMS_PER_PAGE"`
	MetricsFile            string `toml:"metrics_file" env:"METRICS_FILE"`
}

const (
	EnvPrefix = "ATLAS_"

	defaultConfigPath      = "~/.config/atlas/config.toml"
	defaultStoragePath     = "~/.local/share/atlas/prefs.db"
	defaultLogFile         = "~/.local/share/atlas/atlas.log"
	defaultAPIBaseURL      = "https://restcountries.com/v3.1"
	defaultRequestTimeout  = 15000
	defaultCacheTTLMinutes = 5
	defaultRetryAttempts   = 3
	defaultRetryDelayMS    = 1000
	defaultMaxFavorites    = 100
	defaultMaxComparison   = 4
	defaultLocale          = "es"
	defaultLogLevel        = "info"
	defaultItemsPerPage    = 12
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:       defaultAPIBaseURL,
		RequestTimeoutMS: defaultRequestTimeout,
		CacheTTLMinutes:  defaultCacheTTLMinutes,
		RetryAttempts:    defaultRetryAttempts,
		RetryDelayMS:     defaultRetryDelayMS,
		MaxFavorites:     defaultMaxFavorites,
		MaxComparison:    defaultMaxComparison,
		DefaultLocale:    defaultLocale,
		StoragePath:      mustExpand(defaultStoragePath),
		LogLevel:         defaultLogLevel,
		LogFile:          mustExpand(defaultLogFile),
		ItemsPerPage:     defaultItemsPerPage,
	}
}

// Load reads the TOML file at path (or the default location), then applies
// ATLAS_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize trims strings, expands paths, and replaces empty or
// out-of-range values with defaults.
func (c *Config) normalize() {
	def := Default()

	c.APIBaseURL = strings.TrimSpace(c.APIBaseURL)
	if c.APIBaseURL == "" {
		c.APIBaseURL = def.APIBaseURL
	}
	if c.RequestTimeoutMS <= 0 {
		c.RequestTimeoutMS = def.RequestTimeoutMS
	}
	if c.CacheTTLMinutes <= 0 {
		c.CacheTTLMinutes = def.CacheTTLMinutes
	}
	if c.CacheMaxEntries < 0 {
		c.CacheMaxEntries = 0
	}
	if c.RetryAttempts < 0 {
		c.RetryAttempts = def.RetryAttempts
	}
	if c.RetryDelayMS <= 0 {
		c.RetryDelayMS = def.RetryDelayMS
	}
	if c.MaxFavorites <= 0 {
		c.MaxFavorites = def.MaxFavorites
	}
	if c.MaxComparison <= 0 {
		c.MaxComparison = def.MaxComparison
	}
	c.DefaultLocale = strings.ToLower(strings.TrimSpace(c.DefaultLocale))
	if c.DefaultLocale == "" {
		c.DefaultLocale = def.DefaultLocale
	}
	c.StoragePath = strings.TrimSpace(c.StoragePath)
	if c.StoragePath == "" {
		c.StoragePath = def.StoragePath
	} else if c.StoragePath != ":memory:" {
		c.StoragePath = mustExpand(c.StoragePath)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile != "" {
		c.LogFile = mustExpand(c.LogFile)
	}
	if c.RefreshIntervalMinutes < 0 {
		c.RefreshIntervalMinutes = 0
	}
	if c.ItemsPerPage <= 0 {
		c.ItemsPerPage = def.ItemsPerPage
	}
	c.MetricsFile = strings.TrimSpace(c.MetricsFile)
	if c.MetricsFile != "" {
		c.MetricsFile = mustExpand(c.MetricsFile)
	}
}

// RequestTimeout returns the per-request HTTP timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// CacheTTL returns how long cached responses stay valid.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// RetryDelay returns the base backoff delay.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// RefreshInterval returns the background refresh period; zero disables it.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMinutes) * time.Minute
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
