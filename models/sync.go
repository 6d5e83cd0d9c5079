// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"sort"
	"strings"
)

// DiffResult classifies the paths of a remote [Manifest] against a local one.
// The four slices are disjoint and each is sorted lexicographically.
//
// New, Changed and Unchanged together cover exactly the remote paths; Deleted
// holds the local paths the remote no longer has.
type DiffResult struct {
	New       []string `json:"new"`
	Changed   []string `json:"changed"`
	Unchanged []string `json:"unchanged"`
	Deleted   []string `json:"deleted"`
}

// ToFetch returns New followed by Changed, re-sorted into a single
// deterministic order.
func (d DiffResult) ToFetch() []string {
	paths := make([]string, 0, len(d.New)+len(d.Changed))
	paths = append(paths, d.New...)
	paths = append(paths, d.Changed...)
	sort.Strings(paths)
	return paths
}

// TransferMode selects how a logical root is brought in sync.
type TransferMode int

const (
	// ModeNoop means the root is already in sync and nothing is transferred.
	ModeNoop TransferMode = iota
	// ModeFull replaces the whole target directory from a complete archive.
	ModeFull
	// ModeDelta fetches only new and changed files and deletes removed ones.
	ModeDelta
)

// String returns a short lowercase name used in logs and summaries.
func (m TransferMode) String() string {
	switch m {
	case ModeNoop:
		return "noop"
	case ModeFull:
		return "full"
	case ModeDelta:
		return "delta"
	default:
		return "unknown"
	}
}

// TransferPlan is the decision of the transfer planner for one root.
type TransferPlan struct {
	Mode TransferMode `json:"mode"`
	// FilesToFetch is ordered deterministically.
	FilesToFetch []string `json:"files_to_fetch"`
	// FilesToDelete is only populated in [ModeDelta].
	FilesToDelete []string `json:"files_to_delete"`
	// DownloadSize is the sum of the remote sizes of FilesToFetch.
	DownloadSize uint64 `json:"download_size"`
}

// IsNoop reports whether the plan transfers and deletes nothing.
func (p TransferPlan) IsNoop() bool {
	return p.Mode == ModeNoop
}

// PartialArchiveRequest is the JSON body of the partial archive endpoint.
type PartialArchiveRequest struct {
	// Path is the logical root key.
	Path string `json:"path"`
	// Files are root-relative paths with forward slashes.
	Files []string `json:"files"`
}

// FileRequest addresses a single file of a logical root.
type FileRequest struct {
	Key  string
	Path string
}

// ParseFileRequest splits "key/rel/path" at the first slash. A value without
// a slash yields an empty Path.
func ParseFileRequest(s string) FileRequest {
	s = strings.TrimPrefix(s, "/")
	key, rel, _ := strings.Cut(s, "/")
	return FileRequest{Key: key, Path: rel}
}
