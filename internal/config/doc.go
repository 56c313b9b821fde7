// Package config loads the explorer's configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (Default)
//  2. The TOML file passed to Load, or ~/.config/atlas/config.toml
//  3. ATLAS_* environment variables
//
// A missing config file is not an error. Empty or out-of-range values fall
// back to defaults after all sources are applied, and paths are tilde
// expanded.
//
// # TOML Format
//
//	api_base_url = "https://restcountries.com/v3.1"
//	request_timeout_ms = 15000
//	cache_ttl_minutes = 5
//	retry_attempts = 3
//	retry_delay_ms = 1000
//	max_favorites = 100
//	max_comparison = 4
//	default_locale = "es"
//	storage_path = "~/.local/share/atlas/prefs.db"
//	log_level = "info"
//	log_file = "~/.local/share/atlas/atlas.log"
//	refresh_interval_minutes = 0
//	items_per_page = 12
//	metrics_file = ""   # write Prometheus text format here on exit
//
// Every key has an environment counterpart, e.g. ATLAS_REQUEST_TIMEOUT_MS.
package config
