// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-tree-sync/models"
)

// UI is the part of the terminal UI the pull flow talks to.
type UI interface {
	// Interactive reports whether the user can be asked for confirmation.
	Interactive() bool
	// Confirm asks whether the changes to key should be applied.
	Confirm(ctx context.Context, key string) (bool, error)

	ShowPlan(p models.RootPlan)
	ShowReport(r models.RootReport)
	ShowRun(report models.PullReport, dryRun bool)
}
