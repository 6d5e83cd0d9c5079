// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"sort"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// origin server and the puller. It aggregates all sub-configurations and is
// populated by merging values from command-line flags, environment variables,
// an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the shared token, the application version and the log level.
	App App `envPrefix:"APP_"`

	// Server holds the origin's listen address, timeouts, route prefix and
	// source-address allow-list.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the puller's view of the origin: its URL and timeouts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage maps logical root keys to directories and holds the puller's
	// scratch locations.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers bounds how many roots the puller processes in parallel.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Token is the shared secret presented by pullers as a bearer token.
	// An empty token on the origin rejects every request.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds network and timeout settings for the origin.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds reading request headers and bodies. Streaming
	// responses are not cut off by it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RoutePrefix is the path under which every sync route is mounted. The
	// puller uses the same value to build request URLs.
	// Env: SERVER_ROUTE_PREFIX
	RoutePrefix string `env:"ROUTE_PREFIX"`

	// AllowedIPs restricts access to these source addresses or CIDR blocks.
	// Empty allows every address.
	// Env: SERVER_ALLOWED_IPS (comma separated)
	AllowedIPs []string `env:"ALLOWED_IPS" envSeparator:","`

	// TrustedProxies lists the peers whose X-Forwarded-For, X-Real-IP and
	// True-Client-IP headers are believed. Requests from any other peer are
	// checked against AllowedIPs by their TCP address.
	// Env: SERVER_TRUSTED_PROXIES (comma separated)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Adapter holds the puller's connection settings for the origin.
type Adapter struct {
	// Remote is the origin base URL, e.g. "http://origin.example:8080".
	// Env: ADAPTER_REMOTE
	Remote string `env:"REMOTE"`

	// RequestTimeout bounds manifest requests. Archive downloads are bounded
	// only by the caller's context.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ConnectTimeout bounds TCP connection establishment.
	// Env: ADAPTER_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`
}

// Storage describes the logical roots and local scratch directories.
type Storage struct {
	// BaseDir anchors relative root directories. Defaults to the working
	// directory.
	// Env: STORAGE_BASE_DIR
	BaseDir string `env:"BASE_DIR"`

	// Roots maps a logical root key to its directory.
	// Env: STORAGE_ROOTS, e.g. "content:content,assets:public/assets"
	Roots map[string]string `env:"ROOTS" envSeparator:"," envKeyValSeparator:":"`

	// TempDir holds downloaded archives while they are verified and
	// extracted. Defaults to the OS temp directory.
	// Env: STORAGE_TEMP_DIR
	TempDir string `env:"TEMP_DIR"`

	// LockDir holds the per-target lock files. Defaults to TempDir.
	// Env: STORAGE_LOCK_DIR
	LockDir string `env:"LOCK_DIR"`

	// ArchivePrefix is stripped from archive entry names on extraction.
	// Env: STORAGE_ARCHIVE_PREFIX
	ArchivePrefix string `env:"ARCHIVE_PREFIX"`
}

// Workers bounds parallel per-root pipelines on the puller.
type Workers struct {
	// Parallelism is the maximum number of roots processed concurrently.
	// Env: WORKERS_PARALLELISM
	Parallelism int `env:"PARALLELISM"`
}

// Keys returns the configured root keys in lexicographic order.
func (s Storage) Keys() []string {
	keys := make([]string, 0, len(s.Roots))
	for k := range s.Roots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RootDir returns the directory of key, anchored at BaseDir when relative.
func (s Storage) RootDir(key string) (string, bool) {
	dir, ok := s.Roots[key]
	if !ok {
		return "", false
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), true
	}
	return filepath.Join(s.BaseDir, dir), true
}

// RootDirs resolves every configured root with [Storage.RootDir].
func (s Storage) RootDirs() map[string]string {
	dirs := make(map[string]string, len(s.Roots))
	for key := range s.Roots {
		dirs[key], _ = s.RootDir(key)
	}
	return dirs
}

// GetServerConfig loads, merges, and validates the origin configuration from
// all available sources. Earlier sources win over later ones for every
// non-zero field:
//  1. Command-line flags (args)
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetServerConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validateServer()
}
