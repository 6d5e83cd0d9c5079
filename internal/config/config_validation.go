// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// validateServer checks that the merged [StructuredConfig] can run an origin.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.App.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidServerConfigs)
	}

	if !strings.HasPrefix(cfg.Server.RoutePrefix, "/") {
		return fmt.Errorf("%w: route prefix %q must start with /", ErrInvalidServerConfigs, cfg.Server.RoutePrefix)
	}

	for _, entry := range append(append([]string(nil), cfg.Server.AllowedIPs...), cfg.Server.TrustedProxies...) {
		if !isIPOrCIDR(entry) {
			return fmt.Errorf("%w: %q is neither an IP nor a CIDR block", ErrInvalidServerConfigs, entry)
		}
	}

	return validateRoots(cfg.Storage)
}

func (cfg *ClientConfig) validate() error {
	if cfg.App.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidAppConfigs)
	}

	if cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.ConnectTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be at least 1", ErrInvalidWorkerConfigs)
	}

	if cfg.Storage.TempDir == "" {
		return fmt.Errorf("%w: temp dir is required", ErrInvalidStorageConfigs)
	}

	return validateRoots(cfg.Storage)
}

func validateRemote(remote string) error {
	if remote == "" {
		return fmt.Errorf("%w: remote is required", ErrInvalidAdapterConfigs)
	}

	u, err := url.Parse(remote)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: remote %q must be an http(s) URL", ErrInvalidAdapterConfigs, remote)
	}

	return nil
}

// validateRoots requires at least one root. Keys must not contain a slash:
// the file endpoint splits "key/rel/path" at the first one.
func validateRoots(s Storage) error {
	if len(s.Roots) == 0 {
		return fmt.Errorf("%w: at least one root is required", ErrInvalidStorageConfigs)
	}

	for key, dir := range s.Roots {
		if key == "" || strings.ContainsAny(key, `/\`) {
			return fmt.Errorf("%w: invalid root key %q", ErrInvalidStorageConfigs, key)
		}
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("%w: root %q has no directory", ErrInvalidStorageConfigs, key)
		}
	}

	return nil
}

func isIPOrCIDR(s string) bool {
	if net.ParseIP(s) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(s)
	return err == nil
}
