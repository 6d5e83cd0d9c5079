package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/MKhiriev/go-tree-sync/internal/utils"
)

// Lock takes a non-blocking exclusive file lock for target. The lock file
// lives in the configured lock directory and is named after a digest of the
// absolute target path, so two pullers syncing the same target from
// different working directories still exclude each other.
//
// Returns [ErrTargetLocked] when another process holds the lock.
func (t *treeStorage) Lock(target string) (Unlocker, error) {
	lockDir := t.lockDir
	if lockDir == "" {
		lockDir = os.TempDir()
	}

	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir %s: %w", lockDir, err)
	}

	lockPath := filepath.Join(lockDir, LockFileName(target))
	fl := flock.New(lockPath)

	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrTargetLocked, target)
	}

	t.logger.Debug().Str("target", target).Str("lock", lockPath).Msg("target locked")
	return fl, nil
}

// LockFileName returns the lock file name used for target.
func LockFileName(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	digest := utils.DigestBytes([]byte(abs))
	return "tree-sync-" + digest.String()[:16] + ".lock"
}
