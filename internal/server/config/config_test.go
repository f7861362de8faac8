package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8080", cfg.EndpointAddr)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 720*time.Hour, cfg.RefreshTokenValidityDuration)
	require.Equal(t, "eventkeeper", cfg.S3Bucket)
	require.Equal(t, 10, cfg.LoginRateLimit)
	require.Equal(t, time.Minute, cfg.LoginRateWindow)
}

func TestFlagsOverrideDefaults(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"cmd", "-a", ":9090", "-s", "flag-secret", "-t", "30", "-l", "3", "-w", "120"}

	cfg := LoadConfig()
	require.Equal(t, ":9090", cfg.EndpointAddr)
	require.Equal(t, "flag-secret", cfg.SecretKey)
	require.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 3, cfg.LoginRateLimit)
	require.Equal(t, 2*time.Minute, cfg.LoginRateWindow)
}

func TestJsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr": ":7070",
		"database_dsn": "postgres://json",
		"secret_key": "json-secret",
		"access_token_validity_duration": "20m",
		"refresh_token_validity_duration": "48h",
		"s3_root_user": "root",
		"s3_root_password": "pw",
		"s3_bucket": "b",
		"s3_region": "r",
		"s3_base_endpoint": "http://s3/",
		"redis_addr": "127.0.0.1:6380",
		"login_rate_limit": 7,
		"login_rate_window": "90s"
	}`), 0o600))

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"cmd", "-c", path}

	cfg := LoadConfig()
	require.Equal(t, ":7070", cfg.EndpointAddr)
	require.Equal(t, "postgres://json", cfg.DatabaseDSN)
	require.Equal(t, 20*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 48*time.Hour, cfg.RefreshTokenValidityDuration)
	require.Equal(t, "127.0.0.1:6380", cfg.RedisAddr)
	require.Equal(t, 7, cfg.LoginRateLimit)
	require.Equal(t, 90*time.Second, cfg.LoginRateWindow)
}
