// Package config loads crate's runtime configuration.
//
// # Overview
//
// Configuration decides where the catalog lives, how the shared HTTP client
// behaves and where logs go. It is read once at startup; the resulting Config
// is a plain value passed to the process wiring.
//
// # Resolution Order
//
// Load layers sources from lowest to highest precedence:
//
//  1. Built-in defaults
//  2. The TOML file (explicit path, or ~/.config/crate/config.toml)
//  3. CRATE_* environment variables, including any set by a .env file in the
//     working directory
//
// A missing config file or .env file is not an error. A file that exists but
// does not parse is, and the error mentions "parse config".
//
// # TOML Format
//
//	base_url = "https://music.juanfrausto.com/api/"
//
//	[http]
//	timeout = "15s"
//	user_agent = ""
//
//	[log]
//	file = "~/.local/share/crate/crate.log"
//	level = "info"
//	max_size_mb = 5
//	max_backups = 3
//	max_age_days = 28
//
// Every field is optional. Blank strings and non-positive sizes fall back to
// defaults. Tilde paths are expanded.
//
// # Environment
//
// Keys map to variables by upper-casing and replacing dots with underscores:
// base_url is CRATE_BASE_URL, http.timeout is CRATE_HTTP_TIMEOUT.
//
// # Usage Example
//
//	cfg, err := config.Load(*configPath)
//	if err != nil {
//		return fmt.Errorf("load config: %w", err)
//	}
//	client, err := catalog.NewClient(cfg.BaseURL, catalog.WithTimeout(cfg.HTTP.Timeout))
package config
