// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package archive

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/gzip"

	"github.com/MKhiriev/go-tree-sync/internal/logger"
)

type extractor struct {
	// prefix is stripped from entry names when present.
	prefix string

	logger *logger.Logger
}

// NewExtractor constructs an [Extractor]. Entry names have a leading "./"
// removed and, when prefix is non-empty, a leading "prefix/" as well.
func NewExtractor(prefix string, logger *logger.Logger) Extractor {
	return &extractor{
		prefix: strings.Trim(filepath.ToSlash(prefix), "/"),
		logger: logger,
	}
}

// Extract decodes r and writes each regular file entry to target/<name>,
// creating parent directories as needed. Each file is written to a temporary
// sibling and renamed into place, so a reader never observes a half-written
// file. Existing files are overwritten; nothing is deleted except a file or
// directory standing where the archive needs the other kind.
//
// Symlinks, hard links and special entries are skipped. An entry whose name
// would resolve outside target aborts extraction with [ErrUnsafeEntry].
func (e *extractor) Extract(ctx context.Context, r io.Reader, target string) (Stats, error) {
	var stats Stats

	gz, err := gzip.NewReader(r)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	defer gz.Close()

	realTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		return stats, fmt.Errorf("resolve target %s: %w", target, err)
	}

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			return stats, fmt.Errorf("%w: %q", ErrUnsafeEntry, header.Name)
		}
		if err != nil {
			return stats, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
		}

		name, ok := e.entryName(header.Name)
		if !ok {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			dest, err := safeDest(realTarget, name)
			if err != nil {
				return stats, err
			}
			if err := ensureDir(realTarget, dest); err != nil {
				return stats, err
			}
		case tar.TypeReg:
			dest, err := safeDest(realTarget, name)
			if err != nil {
				return stats, err
			}
			n, err := writeFile(ctx, realTarget, dest, tr, header.FileInfo().Mode().Perm())
			if err != nil {
				return stats, err
			}
			stats.Files++
			stats.Bytes += n
		default:
			e.logger.Debug().Str("entry", header.Name).Msg("skipping non-regular archive entry")
		}
	}

	// Drain the gzip trailer so a truncated stream is reported as corrupt.
	if _, err := io.Copy(io.Discard, gz); err != nil {
		return stats, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	return stats, nil
}

// entryName strips "./" and the configured prefix. It reports false for
// names that become empty, such as the prefix directory itself.
func (e *extractor) entryName(raw string) (string, bool) {
	name := filepath.ToSlash(raw)
	for strings.HasPrefix(name, "./") {
		name = strings.TrimPrefix(name, "./")
	}
	if e.prefix != "" {
		if name == e.prefix || name == e.prefix+"/" {
			return "", false
		}
		name = strings.TrimPrefix(name, e.prefix+"/")
	}
	name = strings.TrimSuffix(name, "/")
	return name, name != "" && name != "."
}

// Verify reads r to the end without writing anything, checking the gzip
// and tar framing and rejecting entry names that could never be extracted
// safely. The returned Stats describe the regular files of the archive.
func (e *extractor) Verify(ctx context.Context, r io.Reader) (Stats, error) {
	var stats Stats

	gz, err := gzip.NewReader(r)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			return stats, fmt.Errorf("%w: %q", ErrUnsafeEntry, header.Name)
		}
		if err != nil {
			return stats, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
		}

		name, ok := e.entryName(header.Name)
		if !ok || (header.Typeflag != tar.TypeReg && header.Typeflag != tar.TypeDir) {
			continue
		}
		if _, err := cleanEntryName(name); err != nil {
			return stats, err
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		n, err := io.Copy(io.Discard, &ctxReader{ctx: ctx, r: tr})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stats, ctxErr
			}
			return stats, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
		}
		stats.Files++
		stats.Bytes += n
	}

	if _, err := io.Copy(io.Discard, gz); err != nil {
		return stats, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	return stats, nil
}

// cleanEntryName rejects absolute names, NUL bytes and names climbing with
// "..", and returns the cleaned name.
func cleanEntryName(name string) (string, error) {
	if path.IsAbs(name) || strings.ContainsRune(name, 0) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %q", ErrUnsafeEntry, name)
	}

	cleaned := path.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrUnsafeEntry, name)
	}
	return cleaned, nil
}

// safeDest maps an entry name to a path inside realTarget. Besides the checks
// of cleanEntryName, names routed through a symlink inside the target are
// rejected.
func safeDest(realTarget, name string) (string, error) {
	cleaned, err := cleanEntryName(name)
	if err != nil {
		return "", err
	}

	lexical := filepath.Join(realTarget, filepath.FromSlash(cleaned))
	joined, err := securejoin.SecureJoin(realTarget, filepath.FromSlash(cleaned))
	if err != nil || joined != lexical {
		return "", fmt.Errorf("%w: %q", ErrUnsafeEntry, name)
	}

	return joined, nil
}

// ensureDir creates dir under realTarget. A regular file standing where a
// directory is needed is removed first.
func ensureDir(realTarget, dir string) error {
	err := os.MkdirAll(dir, 0o755)
	if err == nil {
		return nil
	}

	for p := dir; p != realTarget && len(p) > len(realTarget); p = filepath.Dir(p) {
		info, statErr := os.Lstat(p)
		if statErr == nil && !info.IsDir() {
			if rmErr := os.Remove(p); rmErr != nil {
				return fmt.Errorf("remove %s: %w", p, rmErr)
			}
			break
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}

// writeFile copies r into a temporary file next to dest and renames it over
// dest.
func writeFile(ctx context.Context, realTarget, dest string, r io.Reader, perm fs.FileMode) (int64, error) {
	dir := filepath.Dir(dest)
	if err := ensureDir(realTarget, dir); err != nil {
		return 0, err
	}

	if info, err := os.Lstat(dest); err == nil && info.IsDir() {
		if err := os.RemoveAll(dest); err != nil {
			return 0, fmt.Errorf("remove dir %s: %w", dest, err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".tree-sync-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	src := &ctxReader{ctx: ctx, r: r}
	n, err := io.Copy(tmp, src)
	if err != nil {
		tmp.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return n, ctxErr
		}
		if src.err != nil {
			return n, fmt.Errorf("%w: %v", ErrCorruptArchive, src.err)
		}
		return n, fmt.Errorf("write %s: %w", dest, err)
	}

	if perm == 0 {
		perm = 0o644
	}
	if err := tmp.Chmod(perm | 0o600); err != nil {
		tmp.Close()
		return n, fmt.Errorf("chmod %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("close %s: %w", dest, err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return n, fmt.Errorf("rename into %s: %w", dest, err)
	}

	return n, nil
}

// ctxReader stops a long copy once ctx is done and remembers read failures
// so they can be told apart from write failures.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
	err error
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := c.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		c.err = err
	}
	return n, err
}
