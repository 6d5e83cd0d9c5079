// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/go-tree-sync/internal/logger"
)

// treeStorage is the default [TreeStorage] backed by the local filesystem.
type treeStorage struct {
	// lockDir holds the per-target lock files. It lives outside every synced
	// tree so a lock file never shows up in a manifest.
	lockDir string

	logger *logger.Logger
}

// NewTreeStorage constructs a [TreeStorage]. lockDir may be empty on the
// origin, which never calls Lock.
func NewTreeStorage(lockDir string, logger *logger.Logger) TreeStorage {
	return &treeStorage{
		lockDir: lockDir,
		logger:  logger,
	}
}
