// Package config loads runtime settings for the Tastebook CLI.
package config

import "time"

// Config holds the client's runtime settings.
//
// Fields:
//   - APIBaseURL: base URL of the Tastebook REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - PageSize: default page size for list fetches.
//   - VaultPath: path of the local SQLite vault.
//   - KeyPath: path of the master key file protecting the vault.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	PageSize       int
	VaultPath      string
	KeyPath        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5210/api"
	c.RequestTimeout = 10 * time.Second
	c.PageSize = 10
	c.VaultPath = "tastebook.db"
	c.KeyPath = "tastebook.key"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags. Later
// sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
