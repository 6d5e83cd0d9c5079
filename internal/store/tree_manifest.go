// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-tree-sync/internal/utils"
	"github.com/MKhiriev/go-tree-sync/models"
)

// BuildManifest walks root recursively and records the size and content
// digest of every regular file, keyed by its root-relative path with forward
// slashes.
//
// Behavior:
//   - a missing root yields an empty manifest and no error;
//   - directories, symbolic links, devices and sockets are skipped, and
//     symlinked directories are not descended into;
//   - files are hashed by streaming, never read whole into memory;
//   - a file removed while the walk is in progress is skipped;
//   - ctx is checked before every entry, so a cancelled walk returns
//     ctx.Err() promptly.
//
// The walk is read-only.
func (t *treeStorage) BuildManifest(ctx context.Context, root string) (models.Manifest, error) {
	manifest := make(models.Manifest)

	realRoot, err := realDir(root)
	if errors.Is(err, ErrRootNotFound) {
		t.logger.Debug().Str("root", root).Msg("root is absent, manifest is empty")
		return manifest, nil
	}
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(realRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(realRoot, path)
		if err != nil {
			return err
		}

		digest, size, err := utils.DigestFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}

		manifest.Add(models.ManifestEntry{
			Path: filepath.ToSlash(rel),
			Size: size,
			Hash: digest,
		})
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	t.logger.Debug().Str("root", root).Int("files", len(manifest)).Msg("manifest built")
	return manifest, nil
}

// realDir resolves symlinks in root and checks that it is a directory.
func realDir(root string) (string, error) {
	realRoot, err := filepath.EvalSymlinks(root)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}

	info, err := os.Stat(realRoot)
	if err != nil {
		return "", fmt.Errorf("stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	return realRoot, nil
}
