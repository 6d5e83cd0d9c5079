// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tree-sync/internal/adapter"
	"github.com/MKhiriev/go-tree-sync/internal/archive"
	"github.com/MKhiriev/go-tree-sync/internal/store"
)

var taxonomy = []error{
	ErrConfiguration,
	ErrAuthentication,
	ErrTransport,
	ErrArchive,
	ErrFilesystem,
	ErrCancelled,
	ErrTargetLocked,
}

// classifyError wraps err with the taxonomy error that describes it, keeping
// the original chain intact for errors.Is. Errors already classified are
// returned unchanged; anything unrecognised is a filesystem failure, since
// every other stage reports through a known sentinel.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range taxonomy {
		if errors.Is(err, kind) {
			return err
		}
	}

	var kind error
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = ErrCancelled

	case errors.Is(err, adapter.ErrForbidden):
		kind = ErrAuthentication

	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrNotFound),
		errors.Is(err, adapter.ErrUnexpectedStatus),
		errors.Is(err, adapter.ErrIncompleteTransfer),
		errors.Is(err, adapter.ErrRequestFailed),
		errors.Is(err, adapter.ErrInvalidResponse):
		kind = ErrTransport

	case errors.Is(err, archive.ErrCorruptArchive), errors.Is(err, archive.ErrUnsafeEntry):
		kind = ErrArchive

	case errors.Is(err, store.ErrTargetLocked):
		kind = ErrTargetLocked

	default:
		kind = ErrFilesystem
	}

	return fmt.Errorf("%w: %w", kind, err)
}
