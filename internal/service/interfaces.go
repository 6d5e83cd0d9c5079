package service

import (
	"context"

	"github.com/MKhiriev/go-tree-sync/internal/store"
	"github.com/MKhiriev/go-tree-sync/models"
)

// SyncService holds the two pure steps of synchronization: classifying a
// remote manifest against a local one and choosing how to transfer the
// difference.
type SyncService interface {
	// Diff classifies every path of remote and local into New, Changed,
	// Unchanged and Deleted. It fails only when ctx is done.
	Diff(ctx context.Context, remote, local models.Manifest) (models.DiffResult, error)
	// Plan picks between a full and a delta transfer for diff.
	Plan(diff models.DiffResult, remote models.Manifest, hasUsableLocalState, forceFull bool) models.TransferPlan
}

// OriginService serves the configured logical roots to pullers.
type OriginService interface {
	// Manifests builds a manifest for each of keys, or for every configured
	// root when keys is empty. Unknown keys and roots whose directory is
	// absent are omitted from the result.
	Manifests(ctx context.Context, keys []string) (models.RootManifests, error)
	// FullArchive prepares an archive of the whole root named key.
	FullArchive(ctx context.Context, key string) (*ArchiveJob, error)
	// PartialArchive resolves req.Files inside the root and prepares an
	// archive of the ones that resolved. Unsafe, missing and non-regular
	// paths are skipped.
	PartialArchive(ctx context.Context, req models.PartialArchiveRequest) (*ArchiveJob, error)
	// File resolves a single file of a root for direct download.
	File(ctx context.Context, req models.FileRequest) (store.ResolvedFile, error)
}

// OriginServiceWrapper defines middleware composition for OriginService.
// Implementations wrap an existing OriginService to add behavior such as
// request validation.
type OriginServiceWrapper interface {
	Wrap(OriginService) OriginService // returns a decorated OriginService applying additional behavior
}

// AppInfoService exposes build metadata over the version endpoint.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
