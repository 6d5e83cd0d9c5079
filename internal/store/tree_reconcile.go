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
	"sort"
	"strings"
)

// Reconcile deletes paths from target and then prunes every directory under
// target left without entries.
//
// Each path is validated like [TreeStorage.ResolveFile]: unsafe paths are
// recorded in ReconcileResult.Skipped and left alone, missing files are
// ignored, and only regular files are removed. Pruning runs bottom-up and
// repeats until a pass removes nothing. target itself is never removed.
func (t *treeStorage) Reconcile(ctx context.Context, target string, paths []string) (ReconcileResult, error) {
	var result ReconcileResult

	realTarget, err := realDir(target)
	if errors.Is(err, ErrRootNotFound) {
		return result, nil
	}
	if err != nil {
		return result, err
	}

	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		removed, err := t.removeFile(realTarget, rel)
		switch {
		case errors.Is(err, ErrUnsafePath), errors.Is(err, ErrNotRegularFile):
			t.logger.Warn().Err(err).Str("path", rel).Msg("skipping deletion")
			result.Skipped = append(result.Skipped, rel)
		case err != nil:
			return result, err
		case removed:
			result.FilesRemoved++
		}
	}

	pruned, err := pruneEmptyDirs(ctx, realTarget)
	result.DirsPruned = pruned
	if err != nil {
		return result, err
	}

	t.logger.Debug().
		Str("target", target).
		Int("files_removed", result.FilesRemoved).
		Int("dirs_pruned", result.DirsPruned).
		Msg("reconciled")

	return result, nil
}

// removeFile deletes one validated regular file. It reports false without
// error when the file is already gone.
func (t *treeStorage) removeFile(realTarget, rel string) (bool, error) {
	cleanRel, err := CleanRelPath(rel)
	if err != nil {
		return false, err
	}

	full, err := joinInside(realTarget, cleanRel)
	if err != nil {
		return false, err
	}

	info, err := os.Lstat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", cleanRel, err)
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("%w: %s", ErrNotRegularFile, cleanRel)
	}

	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove %s: %w", cleanRel, err)
	}

	return true, nil
}

// pruneEmptyDirs removes empty directories under root, deepest first, and
// repeats until a pass removes nothing.
func pruneEmptyDirs(ctx context.Context, root string) (int, error) {
	total := 0
	for {
		removed, err := prunePass(ctx, root)
		total += removed
		if err != nil || removed == 0 {
			return total, err
		}
	}
}

func prunePass(ctx context.Context, root string) (int, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(dirs, func(i, j int) bool {
		di := strings.Count(dirs[i], string(filepath.Separator))
		dj := strings.Count(dirs[j], string(filepath.Separator))
		if di != dj {
			return di > dj
		}
		return dirs[i] > dirs[j]
	})

	removed := 0
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, fmt.Errorf("read %s: %w", dir, err)
		}
		if len(entries) > 0 {
			continue
		}

		if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove dir %s: %w", dir, err)
		}
		removed++
	}

	return removed, nil
}
