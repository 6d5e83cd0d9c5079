// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package archive

import (
	"archive/tar"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/MKhiriev/go-tree-sync/internal/logger"
)

// streamBufferSize bounds how much compressed output is held before it is
// handed to the underlying writer.
const streamBufferSize = 1 << 20

type packager struct {
	logger *logger.Logger
}

// NewPackager constructs a [Packager].
func NewPackager(logger *logger.Logger) Packager {
	return &packager{logger: logger}
}

// WriteFull walks root and archives every regular file under it with names
// relative to root. Directories, symlinks and special files are not archived;
// the extractor recreates parent directories from file names.
func (p *packager) WriteFull(ctx context.Context, root string, w io.Writer) (Stats, error) {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return Stats{}, fmt.Errorf("resolve root %s: %w", root, err)
	}

	return p.stream(ctx, w, func(add addFunc) error {
		return filepath.WalkDir(realRoot, func(path string, d fs.DirEntry, walkErr error) error {
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
			return add(Entry{Name: filepath.ToSlash(rel), Path: path})
		})
	})
}

// WritePartial archives entries in the given order.
func (p *packager) WritePartial(ctx context.Context, entries []Entry, w io.Writer) (Stats, error) {
	return p.stream(ctx, w, func(add addFunc) error {
		for _, e := range entries {
			if err := add(e); err != nil {
				return err
			}
		}
		return nil
	})
}

type addFunc func(Entry) error

// stream sets up the buffer → gzip → tar chain, lets produce feed entries
// into it and closes the chain in order so the gzip trailer is flushed.
func (p *packager) stream(ctx context.Context, w io.Writer, produce func(addFunc) error) (Stats, error) {
	var stats Stats

	bw := bufio.NewWriterSize(w, streamBufferSize)
	gz := gzip.NewWriter(bw)
	tw := tar.NewWriter(gz)

	add := func(e Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := writeEntry(tw, e)
		if errors.Is(err, errSkipEntry) {
			p.logger.Debug().Str("entry", e.Name).Msg("entry vanished before packaging, skipped")
			return nil
		}
		if errors.Is(err, errShortEntry) {
			p.logger.Warn().Str("entry", e.Name).Msg("entry shrank while packaging, padded with zeros")
			err = nil
		}
		if err != nil {
			return err
		}

		stats.Files++
		stats.Bytes += n
		return nil
	}

	if err := produce(add); err != nil {
		return stats, err
	}

	if err := tw.Close(); err != nil {
		return stats, fmt.Errorf("close tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return stats, fmt.Errorf("close gzip: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("flush archive: %w", err)
	}

	return stats, nil
}

var (
	errSkipEntry  = errors.New("skip entry")
	errShortEntry = errors.New("entry shorter than its header")
)

// writeEntry writes one file header and body. The header is built from the
// opened file so the size written matches the size announced.
func writeEntry(tw *tar.Writer, e Entry) (int64, error) {
	f, err := os.Open(e.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, errSkipEntry
	}
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", e.Name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", e.Name, err)
	}
	if !info.Mode().IsRegular() {
		return 0, errSkipEntry
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return 0, fmt.Errorf("make header %s: %w", e.Name, err)
	}
	header.Name = e.Name
	header.Uname, header.Gname = "", ""
	header.Uid, header.Gid = 0, 0

	if err := tw.WriteHeader(header); err != nil {
		return 0, fmt.Errorf("write %s header: %w", e.Name, err)
	}

	return copyBody(tw, f, info.Size(), e.Name)
}

// copyBody writes exactly size bytes of the entry body. A source that ends
// early is padded with zeros and reported as [errShortEntry]; the header is
// already on the wire, so the stream stays readable and the next sync
// repairs the content.
func copyBody(tw *tar.Writer, r io.Reader, size int64, name string) (int64, error) {
	n, err := io.CopyN(tw, r, size)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("write %s: %w", name, err)
	}

	if _, err := io.CopyN(tw, zeros{}, size-n); err != nil {
		return n, fmt.Errorf("pad %s: %w", name, err)
	}
	return size, errShortEntry
}

type zeros struct{}

func (zeros) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}
