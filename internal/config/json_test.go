package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	p := filepath.Join(t.TempDir(), "config.json")
	jsonBody := `{
		"app": {"token": "secret", "version": "1.0.0", "log_level": "debug"},
		"server": {
			"address": "localhost:8080",
			"request_timeout": "30s",
			"route_prefix": "/_sync",
			"allowed_ips": ["127.0.0.1"],
			"trusted_proxies": ["10.0.0.0/8"]
		},
		"adapter": {
			"remote": "http://origin:8080",
			"request_timeout": "1m",
			"connect_timeout": 5000000000
		},
		"storage": {
			"base_dir": "/srv/site",
			"roots": {"content": "content"},
			"temp_dir": "/tmp",
			"lock_dir": "/run/lock",
			"archive_prefix": "site"
		},
		"workers": {"parallelism": 2}
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "secret", cfg.App.Token)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/_sync", cfg.Server.RoutePrefix)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Server.AllowedIPs)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Server.TrustedProxies)
	assert.Equal(t, "http://origin:8080", cfg.Adapter.Remote)
	assert.Equal(t, time.Minute, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Adapter.ConnectTimeout)
	assert.Equal(t, "/srv/site", cfg.Storage.BaseDir)
	assert.Equal(t, map[string]string{"content": "content"}, cfg.Storage.Roots)
	assert.Equal(t, "/tmp", cfg.Storage.TempDir)
	assert.Equal(t, "/run/lock", cfg.Storage.LockDir)
	assert.Equal(t, "site", cfg.Storage.ArchivePrefix)
	assert.Equal(t, 2, cfg.Workers.Parallelism)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_BadDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"server":{"request_timeout":"forever"}}`), 0o600))

	_, err := parseJSON(p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))

	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))
}
