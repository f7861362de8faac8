package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://127.0.0.1:8080", cfg.ServerBaseURL)
	require.Equal(t, "https://jsonplaceholder.typicode.com", cfg.EventAPIBaseURL)
	require.Equal(t, "eventkeeper.db", cfg.DatabasePath)
}

func TestFlagsOverrideDefaults(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"cmd", "-a", "http://api.example.com", "-d", "/tmp/client.db"}

	cfg := LoadConfig()
	require.Equal(t, "http://api.example.com", cfg.ServerBaseURL)
	require.Equal(t, "/tmp/client.db", cfg.DatabasePath)
	require.Equal(t, "https://jsonplaceholder.typicode.com", cfg.EventAPIBaseURL,
		"untouched fields keep their defaults")
}

func TestJsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"server_base_url": "http://json.example.com", "database_path": "/tmp/json.db"}`), 0o600))

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"cmd", "-c", path}

	cfg := LoadConfig()
	require.Equal(t, "http://json.example.com", cfg.ServerBaseURL)
	require.Equal(t, "/tmp/json.db", cfg.DatabasePath)
}

func TestFlagsWinOverJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"server_base_url": "http://json.example.com"}`), 0o600))

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"cmd", "-c", path, "-a", "http://flag.example.com"}

	cfg := LoadConfig()
	require.Equal(t, "http://flag.example.com", cfg.ServerBaseURL)
}
