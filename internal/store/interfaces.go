package store

import (
	"context"

	"github.com/MKhiriev/go-tree-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TreeStorage is the filesystem side of synchronization. It is the only
// component that reads or mutates directory trees.
type TreeStorage interface {
	// BuildManifest walks root and returns the size and content digest of
	// every regular file under it. A missing root yields an empty manifest.
	BuildManifest(ctx context.Context, root string) (models.Manifest, error)
	// RootDir resolves root to its real directory path, or fails with
	// ErrRootNotFound.
	RootDir(root string) (string, error)
	// ResolveFile maps a network-supplied relative path to a regular file
	// inside root, rejecting anything that would escape it.
	ResolveFile(root, rel string) (ResolvedFile, error)
	// Reconcile removes the listed files from target and prunes directories
	// left empty. Missing files are not an error.
	Reconcile(ctx context.Context, target string, paths []string) (ReconcileResult, error)
	// Stage creates an empty staging directory beside target. Archives are
	// extracted there so target stays untouched until the commit.
	Stage(target string) (string, error)
	// Replace swaps staging in for target, resolving a symlinked target to
	// the directory it points at.
	Replace(target, staging string) error
	// Merge moves the files of staging into target and returns how many were
	// moved.
	Merge(ctx context.Context, target, staging string) (int, error)
	// DropStage removes a staging directory. An empty path is a no-op.
	DropStage(staging string) error
	// Lock takes the exclusive, non-blocking apply lock for target.
	Lock(target string) (Unlocker, error)
}

// Unlocker releases a lock obtained from [TreeStorage.Lock].
type Unlocker interface {
	Unlock() error
}

// ResolvedFile is a file that passed path validation.
type ResolvedFile struct {
	// Rel is the cleaned root-relative path with forward slashes.
	Rel string
	// Path is the absolute on-disk location.
	Path string
	// Size is the length observed during resolution.
	Size int64
}

// ReconcileResult counts what a reconciliation pass removed.
type ReconcileResult struct {
	FilesRemoved int
	DirsPruned   int
	// Skipped lists requested paths that failed validation and were left
	// untouched.
	Skipped []string
}
