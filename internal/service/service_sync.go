package service

import (
	"context"

	"github.com/MKhiriev/go-tree-sync/models"
)

// syncService is the concrete implementation of SyncService.
// It compares two manifests purely in memory; no storage layer or logger is
// required because neither operation has side effects.
type syncService struct{}

// NewSyncService constructs a SyncService ready for use.
func NewSyncService() SyncService {
	return &syncService{}
}

// Diff implements SyncService.
//
// It makes two linear passes over the sorted paths of both manifests:
//
//   - Pass 1 (over remote): every remote path is New, Changed or Unchanged
//     depending on whether the local manifest has it and whether the digests
//     match. Sizes are never used to decide equality.
//   - Pass 2 (over local): local paths the remote does not list are Deleted.
//
// Because both passes walk sorted paths, every slice of the result is sorted
// without a final sort. ctx cancellation is checked at the start of each
// iteration so that callers can abort early on very large trees.
func (s *syncService) Diff(ctx context.Context, remote, local models.Manifest) (models.DiffResult, error) {
	var diff models.DiffResult

	// ── Pass 1: iterate over remote paths ────────────────────────────────────
	for _, p := range remote.Paths() {
		if err := ctx.Err(); err != nil {
			return models.DiffResult{}, err
		}

		lm, existsLocally := local[p]
		switch {
		case !existsLocally:
			diff.New = append(diff.New, p)
		case lm.Hash != remote[p].Hash:
			diff.Changed = append(diff.Changed, p)
		default:
			diff.Unchanged = append(diff.Unchanged, p)
		}
	}

	// ── Pass 2: find local-only paths ─────────────────────────────────────────
	for _, p := range local.Paths() {
		if err := ctx.Err(); err != nil {
			return models.DiffResult{}, err
		}

		if _, existsRemotely := remote[p]; existsRemotely {
			// Already classified in pass 1.
			continue
		}
		diff.Deleted = append(diff.Deleted, p)
	}

	return diff, nil
}

// Plan implements SyncService.
//
// Decision table:
//
//   - forceFull, or no usable local state: Full. Every remote path is fetched
//     and nothing is deleted individually, since the target is rebuilt. With
//     no usable local state and an empty remote there is nothing to replace,
//     so the plan is a no-op.
//   - otherwise Delta: fetch New and Changed, delete Deleted. When both lists
//     are empty the plan is a no-op.
func (s *syncService) Plan(diff models.DiffResult, remote models.Manifest, hasUsableLocalState, forceFull bool) models.TransferPlan {
	if forceFull || !hasUsableLocalState {
		if len(remote) == 0 && !hasUsableLocalState {
			return models.TransferPlan{Mode: models.ModeNoop}
		}

		paths := remote.Paths()
		return models.TransferPlan{
			Mode:         models.ModeFull,
			FilesToFetch: paths,
			DownloadSize: remote.TotalSize(paths),
		}
	}

	fetch := diff.ToFetch()
	if len(fetch) == 0 && len(diff.Deleted) == 0 {
		return models.TransferPlan{Mode: models.ModeNoop}
	}

	return models.TransferPlan{
		Mode:          models.ModeDelta,
		FilesToFetch:  fetch,
		FilesToDelete: append([]string(nil), diff.Deleted...),
		DownloadSize:  remote.TotalSize(fetch),
	}
}
