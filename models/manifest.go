// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/hex"
	"fmt"
	"sort"
)

// DigestSize is the length in bytes of a content [Digest].
const DigestSize = 32

// Digest is a fixed-length content digest of a single file. It depends on the
// file bytes only, never on metadata such as timestamps or permissions.
//
// On the wire a Digest is encoded as a lowercase hex string.
type Digest [DigestSize]byte

// String returns the lowercase hex form of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText implements [encoding.TextMarshaler].
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. It rejects values that
// are not exactly [DigestSize] bytes of hex.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDigest decodes a hex digest string.
func ParseDigest(s string) (Digest, error) {
	var d Digest

	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("decode digest %q: %w", s, err)
	}
	if len(raw) != DigestSize {
		return d, fmt.Errorf("digest %q has %d bytes, want %d", s, len(raw), DigestSize)
	}

	copy(d[:], raw)
	return d, nil
}

// FileMeta is the manifest value stored for one file.
type FileMeta struct {
	// Size is the file length in bytes.
	Size uint64 `json:"size"`
	// Hash is the content digest of the file.
	Hash Digest `json:"hash"`
}

// ManifestEntry is one file of a [Manifest] together with its path.
type ManifestEntry struct {
	// Path is relative to the logical root and always uses forward slashes.
	Path string
	Size uint64
	Hash Digest
}

// Manifest maps a root-relative path to the size and digest of the file
// stored there. A Manifest is a snapshot: it is rebuilt on every request and
// never persisted.
type Manifest map[string]FileMeta

// Add stores e in the manifest, replacing any previous entry for e.Path.
func (m Manifest) Add(e ManifestEntry) {
	m[e.Path] = FileMeta{Size: e.Size, Hash: e.Hash}
}

// Paths returns every path of the manifest in lexicographic order.
func (m Manifest) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Entries returns the manifest as a slice sorted by path.
func (m Manifest) Entries() []ManifestEntry {
	entries := make([]ManifestEntry, 0, len(m))
	for _, p := range m.Paths() {
		meta := m[p]
		entries = append(entries, ManifestEntry{Path: p, Size: meta.Size, Hash: meta.Hash})
	}
	return entries
}

// TotalSize sums the sizes of the given paths. Paths missing from the
// manifest count as zero.
func (m Manifest) TotalSize(paths []string) uint64 {
	var total uint64
	for _, p := range paths {
		total += m[p].Size
	}
	return total
}

// Equal reports whether m and other contain the same paths with the same
// digests and sizes.
func (m Manifest) Equal(other Manifest) bool {
	if len(m) != len(other) {
		return false
	}
	for p, meta := range m {
		o, ok := other[p]
		if !ok || o != meta {
			return false
		}
	}
	return true
}

// RootManifests is the body of the manifest endpoint: one [Manifest] per
// logical root key.
type RootManifests map[string]Manifest
