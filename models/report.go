// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// PullOptions are the puller's per-invocation switches.
type PullOptions struct {
	// Keys restricts the run to these logical roots. Empty means every
	// configured root.
	Keys []string
	// DryRun computes diffs and plans without transferring anything.
	DryRun bool
	// Force skips the interactive confirmation.
	Force bool
	// Full forces [ModeFull] for every requested root.
	Full bool
}

// RootPlan is the planning result for one logical root, produced before any
// transfer so it can be shown to the user and confirmed.
type RootPlan struct {
	Key       string
	TargetDir string
	// Served is false when the origin returned no manifest for Key.
	Served bool
	Diff   DiffResult
	Plan   TransferPlan
	// Err records a planning failure confined to this root.
	Err error
}

// RootStatus is the terminal state of one root's pipeline.
type RootStatus int

const (
	StatusUpToDate RootStatus = iota
	StatusSynced
	StatusDryRun
	StatusSkipped
	StatusNotServed
	StatusFailed
)

// String returns the status name used in summaries.
func (s RootStatus) String() string {
	switch s {
	case StatusUpToDate:
		return "up to date"
	case StatusSynced:
		return "synced"
	case StatusDryRun:
		return "dry run"
	case StatusSkipped:
		return "skipped"
	case StatusNotServed:
		return "not served"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RootReport describes how one root's pipeline ended.
type RootReport struct {
	Key    string
	Status RootStatus
	Mode   TransferMode
	// BytesTransferred counts compressed archive bytes received.
	BytesTransferred int64
	// FilesExtracted counts regular files written from the archive.
	FilesExtracted int
	// FilesDeleted and DirsPruned come from reconciliation.
	FilesDeleted int
	DirsPruned   int
	// Err is set only when Status is [StatusFailed].
	Err error
}

// PullReport aggregates the reports of every root processed in one run.
type PullReport struct {
	Roots []RootReport
}

// Failed reports whether at least one root failed.
func (r PullReport) Failed() bool {
	for _, root := range r.Roots {
		if root.Status == StatusFailed {
			return true
		}
	}
	return false
}
