package archive

import "errors"

var (
	// ErrUnsafeEntry is returned when an archive entry would land outside the
	// extraction target.
	ErrUnsafeEntry = errors.New("archive entry escapes target")

	// ErrCorruptArchive is returned when the gzip or tar stream cannot be
	// decoded.
	ErrCorruptArchive = errors.New("corrupt archive")
)
