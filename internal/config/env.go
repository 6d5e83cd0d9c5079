package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment through the env/envPrefix tags.
// Root keys and directories are trimmed, so "content: content" and
// "content:content" mean the same.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if len(cfg.Storage.Roots) > 0 {
		roots := make(map[string]string, len(cfg.Storage.Roots))
		for key, dir := range cfg.Storage.Roots {
			roots[strings.TrimSpace(key)] = strings.TrimSpace(dir)
		}
		cfg.Storage.Roots = roots
	}

	return nil
}
