package service

import (
	"context"

	"github.com/MKhiriev/go-tree-sync/models"
)

// PullService defines the puller's per-root pipeline. Planning and applying
// are separate so the caller can show each plan and ask for confirmation in
// between.
type PullService interface {
	// Keys returns the configured logical root keys, sorted.
	Keys() []string

	// Plan fetches the origin manifests for opts.Keys (every configured root
	// when empty), builds the local manifests and returns one RootPlan per
	// key in the same order. A failure to reach the origin fails the whole
	// call; a failure confined to one root is recorded in that root's plan.
	Plan(ctx context.Context, opts models.PullOptions) ([]models.RootPlan, error)

	// Apply carries out plan against its target directory and reports how
	// it ended. It never returns an error: failures are classified into the
	// error taxonomy and carried in the report.
	Apply(ctx context.Context, plan models.RootPlan) models.RootReport
}
