package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	stagePattern  = ".tree-sync-stage-*"
	backupPattern = ".tree-sync-old-*"
)

// targetDir resolves target to the path that is actually replaced. A
// symlinked target resolves to the directory it points at; a missing target
// resolves to its absolute path. Empty paths and filesystem roots are refused.
func targetDir(target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("%w: empty path", ErrRefuseTarget)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", target, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		resolved = abs
	case err != nil:
		return "", fmt.Errorf("resolve %s: %w", target, err)
	}

	if resolved == filepath.Dir(resolved) {
		return "", fmt.Errorf("%w: %s is a filesystem root", ErrRefuseTarget, resolved)
	}
	return resolved, nil
}

// Stage creates an empty directory next to target, on the same filesystem,
// so its content can later be renamed into place.
func (t *treeStorage) Stage(target string) (string, error) {
	dir, err := targetDir(target)
	if err != nil {
		return "", err
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", parent, err)
	}

	staging, err := os.MkdirTemp(parent, "."+filepath.Base(dir)+stagePattern)
	if err != nil {
		return "", fmt.Errorf("create staging dir for %s: %w", target, err)
	}
	if err := os.Chmod(staging, 0o755); err != nil {
		_ = os.RemoveAll(staging)
		return "", fmt.Errorf("chmod %s: %w", staging, err)
	}

	t.logger.Debug().Str("target", dir).Str("staging", staging).Msg("staging dir created")
	return staging, nil
}

// Replace puts staging in place of target. The old tree is moved aside
// first and restored if the second rename fails, so target is always either
// the old or the new tree.
func (t *treeStorage) Replace(target, staging string) error {
	dir, err := targetDir(target)
	if err != nil {
		return err
	}

	info, err := os.Lstat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.Rename(staging, dir); err != nil {
			return fmt.Errorf("move %s into place: %w", staging, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if info.IsDir() {
		_ = os.Chmod(staging, info.Mode().Perm())
	}

	backup, err := os.MkdirTemp(filepath.Dir(dir), "."+filepath.Base(dir)+backupPattern)
	if err != nil {
		return fmt.Errorf("reserve backup name for %s: %w", dir, err)
	}
	if err := os.Remove(backup); err != nil {
		return fmt.Errorf("reserve backup name for %s: %w", dir, err)
	}

	if err := os.Rename(dir, backup); err != nil {
		return fmt.Errorf("move %s aside: %w", dir, err)
	}
	if err := os.Rename(staging, dir); err != nil {
		if restoreErr := os.Rename(backup, dir); restoreErr != nil {
			t.logger.Error().Err(restoreErr).Str("target", dir).Str("backup", backup).Msg("failed to restore target")
		}
		return fmt.Errorf("move %s into place: %w", staging, err)
	}

	if err := os.RemoveAll(backup); err != nil {
		t.logger.Warn().Err(err).Str("backup", backup).Msg("failed to remove replaced tree")
	}

	t.logger.Debug().Str("target", dir).Msg("target replaced")
	return nil
}

// Merge moves every regular file of staging to the same relative path under
// target, replacing what is there. A directory standing where a file goes is
// removed, and so is a file standing where a directory is needed.
func (t *treeStorage) Merge(ctx context.Context, target, staging string) (int, error) {
	dir, err := targetDir(target)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", dir, err)
	}

	realStage, err := realDir(staging)
	if err != nil {
		return 0, err
	}

	moved := 0
	err = filepath.WalkDir(realStage, func(p string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(realStage, p)
		if err != nil {
			return err
		}
		dest, err := joinInside(dir, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if err := clearWay(dir, dest); err != nil {
			return err
		}
		if err := os.Rename(p, dest); err != nil {
			return fmt.Errorf("move %s: %w", rel, err)
		}
		moved++
		return nil
	})
	if err != nil {
		return moved, err
	}

	t.logger.Debug().Str("target", dir).Int("files", moved).Msg("staged files merged")
	return moved, nil
}

// clearWay makes sure dest can be renamed onto: every parent between root
// and dest is a directory and dest itself is not one.
func clearWay(root, dest string) error {
	parent := filepath.Dir(dest)

	if err := os.MkdirAll(parent, 0o755); err != nil {
		for p := parent; within(root, p) && p != root; p = filepath.Dir(p) {
			info, statErr := os.Lstat(p)
			if statErr == nil && !info.IsDir() {
				if rmErr := os.Remove(p); rmErr != nil {
					return fmt.Errorf("remove %s: %w", p, rmErr)
				}
				break
			}
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", parent, err)
		}
	}

	if info, err := os.Lstat(dest); err == nil && info.IsDir() {
		if err := os.RemoveAll(dest); err != nil {
			return fmt.Errorf("remove dir %s: %w", dest, err)
		}
	}
	return nil
}

// DropStage removes a staging directory and whatever is left in it.
func (t *treeStorage) DropStage(staging string) error {
	if staging == "" {
		return nil
	}
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("remove staging dir %s: %w", staging, err)
	}
	return nil
}
