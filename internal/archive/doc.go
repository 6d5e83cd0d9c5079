// Package archive streams directory trees as gzip-compressed tar archives and
// unpacks them into a target directory.
//
// The [Packager] runs on the origin and writes straight into an io.Writer,
// usually an HTTP response, holding at most one buffered chunk in memory.
// The [Extractor] runs on the puller against an archive that has already been
// downloaded and verified.
package archive
