package config

import (
	"encoding/json"
	"os"

	"github.com/eventkeeper/eventkeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerBaseURL   string `json:"server_base_url"`
	EventAPIBaseURL string `json:"event_api_base_url"`
	DatabasePath    string `json:"database_path"`
}

// parseJson overlays Config with values loaded from the JSON file given via
// the -c/-config flags. When no file is given, the Config is left untouched.
// Read or unmarshal errors panic; intended usage is defaults -> parseJson ->
// parseFlags, where later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.EventAPIBaseURL != "" {
		cfg.EventAPIBaseURL = jc.EventAPIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
