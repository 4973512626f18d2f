package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the NoteSphere CLI.
//
// Fields:
//   - BaseURL: scheme://host:port of the backend REST API.
//   - DataDir: directory for the credential record and upload staging.
//   - RequestTimeout: per-request HTTP timeout.
//   - TokenTTL: fallback session lifetime when the server token carries no
//     expiry claim.
type Config struct {
	BaseURL        string
	DataDir        string
	RequestTimeout time.Duration
	TokenTTL       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:5000"
	c.DataDir = defaultDataDir()
	c.RequestTimeout = 30 * time.Second
	c.TokenTTL = 24 * time.Hour
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".notesphere"
	}
	return filepath.Join(home, ".notesphere")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
