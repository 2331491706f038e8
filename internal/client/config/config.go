package config

import "time"

// Config holds runtime settings for the vegtrack CLI.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API.
//   - CacheDSN: SQLite DSN of the durable local entry cache.
//   - SuggestDelay: debounce window for name suggestions.
//   - NoticeTTL: how long transient notices stay visible.
//
// Units: SuggestDelay and NoticeTTL are time.Durations.
type Config struct {
	ServerURL    string
	CacheDSN     string
	SuggestDelay time.Duration
	NoticeTTL    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.CacheDSN = "vegtrack.db"
	c.SuggestDelay = 300 * time.Millisecond
	c.NoticeTTL = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
