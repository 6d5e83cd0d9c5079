package config

import (
	"fmt"
	"strings"
	"time"
)

// ClientApp holds puller application settings derived from the shared
// structured config.
type ClientApp struct {
	// Token is sent as the bearer token on every origin request.
	Token string
	// LogLevel is the zerolog level name for the console logger.
	LogLevel string
}

// ClientAdapter holds network settings used by the puller transport layer.
type ClientAdapter struct {
	// BaseURL is the origin URL joined with the route prefix.
	BaseURL string
	// RequestTimeout is the timeout for manifest requests.
	RequestTimeout time.Duration
	// ConnectTimeout bounds TCP connection establishment.
	ConnectTimeout time.Duration
}

// ClientConfig is the top-level puller configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains the origin URL and timeouts.
	Adapter ClientAdapter
	// Storage contains the root mapping and scratch directories.
	Storage Storage
	// Workers bounds per-root parallelism.
	Workers Workers
}

// GetClientConfig builds and validates the puller config view. overrides
// usually comes from the CLI and takes precedence over environment
// variables, the JSON file and defaults.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withOverrides(overrides).
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	storage := cfg.Storage
	if storage.LockDir == "" {
		storage.LockDir = storage.TempDir
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Token:    cfg.App.Token,
			LogLevel: cfg.App.LogLevel,
		},
		Adapter: ClientAdapter{
			BaseURL:        joinURL(cfg.Adapter.Remote, cfg.Server.RoutePrefix),
			RequestTimeout: cfg.Adapter.RequestTimeout,
			ConnectTimeout: cfg.Adapter.ConnectTimeout,
		},
		Storage: storage,
		Workers: cfg.Workers,
	}

	if err := validateRemote(cfg.Adapter.Remote); err != nil {
		return nil, err
	}

	return clientCfg, clientCfg.validate()
}

func joinURL(remote, prefix string) string {
	if remote == "" {
		return ""
	}
	return strings.TrimRight(remote, "/") + "/" + strings.Trim(prefix, "/")
}
