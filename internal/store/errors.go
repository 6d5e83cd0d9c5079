package store

import "errors"

// Sentinel errors returned by [TreeStorage]. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrUnsafePath is returned when a relative path is absolute, climbs out
	// of its root with "..", or passes through a symbolic link.
	ErrUnsafePath = errors.New("path escapes root")

	// ErrFileNotFound is returned when a resolved path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotRegularFile is returned when a resolved path exists but is a
	// directory, symlink, device or other special file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrRootNotFound is returned when the root directory itself is absent.
	ErrRootNotFound = errors.New("root directory not found")

	// ErrTargetLocked is returned by Lock when another process is applying
	// changes to the same target.
	ErrTargetLocked = errors.New("target is locked by another process")

	// ErrRefuseTarget is returned when a target to stage or replace is an
	// empty path or a filesystem root.
	ErrRefuseTarget = errors.New("refusing to replace target")
)
