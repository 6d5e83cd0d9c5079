// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// ResolveFile maps rel, a path received from the network, to a regular file
// inside root.
//
// The path is rejected with [ErrUnsafePath] when it is empty, absolute,
// contains a NUL byte, climbs above root after cleaning, or passes through a
// symbolic link at any component. It is rejected with [ErrFileNotFound] when
// nothing exists there and with [ErrNotRegularFile] for directories and
// special files.
func (t *treeStorage) ResolveFile(root, rel string) (ResolvedFile, error) {
	cleanRel, err := CleanRelPath(rel)
	if err != nil {
		return ResolvedFile{}, err
	}

	realRoot, err := realDir(root)
	if err != nil {
		return ResolvedFile{}, err
	}

	full, err := joinInside(realRoot, cleanRel)
	if err != nil {
		return ResolvedFile{}, err
	}

	info, err := os.Lstat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return ResolvedFile{}, fmt.Errorf("%w: %s", ErrFileNotFound, cleanRel)
	}
	if err != nil {
		return ResolvedFile{}, fmt.Errorf("stat %s: %w", cleanRel, err)
	}
	if !info.Mode().IsRegular() {
		return ResolvedFile{}, fmt.Errorf("%w: %s", ErrNotRegularFile, cleanRel)
	}

	return ResolvedFile{Rel: cleanRel, Path: full, Size: info.Size()}, nil
}

// RootDir returns the symlink-free location of the directory root.
func (t *treeStorage) RootDir(root string) (string, error) {
	return realDir(root)
}

// CleanRelPath normalizes a forward-slash relative path. It accepts a leading
// "./", rejects absolute paths, backslashes used as separators on Windows,
// NUL bytes and any path that climbs out of its root.
func CleanRelPath(rel string) (string, error) {
	if rel == "" || strings.ContainsRune(rel, 0) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, rel)
	}

	slashed := filepath.ToSlash(rel)
	if path.IsAbs(slashed) || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf("%w: %q is absolute", ErrUnsafePath, rel)
	}

	cleaned := path.Clean(slashed)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, rel)
	}

	return cleaned, nil
}

// joinInside joins cleanRel onto realRoot with securejoin and then checks that
// no component was a symbolic link: securejoin resolves links within the
// root, so any difference from the lexical join means one was followed.
func joinInside(realRoot, cleanRel string) (string, error) {
	lexical := filepath.Join(realRoot, filepath.FromSlash(cleanRel))

	joined, err := securejoin.SecureJoin(realRoot, filepath.FromSlash(cleanRel))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnsafePath, cleanRel, err)
	}

	if joined != lexical || !within(realRoot, joined) {
		return "", fmt.Errorf("%w: %s passes through a symbolic link", ErrUnsafePath, cleanRel)
	}

	return joined, nil
}

// within reports whether p is root or lies beneath it.
func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
