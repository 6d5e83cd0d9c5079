package archive

import (
	"context"
	"io"
)

// Entry is one file to place in a partial archive.
type Entry struct {
	// Name is the root-relative archive path with forward slashes.
	Name string
	// Path is the on-disk location of the file.
	Path string
}

// Stats counts what was written to or read from an archive.
type Stats struct {
	Files int
	Bytes int64
}

// Packager writes tar+gzip archives.
type Packager interface {
	// WriteFull archives every regular file under root.
	WriteFull(ctx context.Context, root string, w io.Writer) (Stats, error)
	// WritePartial archives the given entries, skipping any that vanished or
	// stopped being regular files since they were resolved.
	WritePartial(ctx context.Context, entries []Entry, w io.Writer) (Stats, error)
}

// Extractor unpacks tar+gzip archives.
type Extractor interface {
	// Extract writes every regular file entry of r under target.
	Extract(ctx context.Context, r io.Reader, target string) (Stats, error)
	// Verify reads r to the end and reports whether Extract could consume
	// it, without touching the filesystem.
	Verify(ctx context.Context, r io.Reader) (Stats, error)
}
