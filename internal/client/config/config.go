// Package config handles configuration for the client CLI: defaults, JSON
// overlay, and command-line flags.
package config

// Config holds runtime settings for the eventkeeper client.
//
// Fields:
//   - ServerBaseURL: base URL of the eventkeeper backend API.
//   - EventAPIBaseURL: base URL of the public event feed API.
//   - DatabasePath: path of the local sqlite file (prefs, cached session).
type Config struct {
	ServerBaseURL   string
	EventAPIBaseURL string
	DatabasePath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.EventAPIBaseURL = "https://jsonplaceholder.typicode.com"
	c.DatabasePath = "eventkeeper.db"
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
