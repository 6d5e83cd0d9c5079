// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the puller's transport to the origin.
//
// The primary abstraction is [OriginAdapter], which decouples the pull
// pipeline from HTTP. The package ships a resty-based implementation
// ([NewHTTPOriginAdapter]) that streams archives straight into a caller
// supplied writer instead of buffering them.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrForbidden] for 403, [ErrIncompleteTransfer] for a
// body shorter than announced).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-tree-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/origin_adapter_mock.go -package=mock

// OriginAdapter defines transport-agnostic communication with the origin.
// Implementations attach the shared secret to every request and map
// transport failures to the sentinel values of this package.
type OriginAdapter interface {
	// FetchManifests returns the manifests of keys, or of every root the
	// origin serves when keys is empty. Roots the origin does not serve are
	// absent from the result.
	FetchManifests(ctx context.Context, keys []string) (models.RootManifests, error)

	// DownloadArchive streams the full archive of key into w and returns the
	// number of bytes written. An error is returned unless the whole body
	// arrived with a success status.
	DownloadArchive(ctx context.Context, key string, w io.Writer) (int64, error)

	// DownloadPartialArchive streams an archive of req.Files into w, with the
	// same guarantees as DownloadArchive.
	DownloadPartialArchive(ctx context.Context, req models.PartialArchiveRequest, w io.Writer) (int64, error)

	// Version returns the version string reported by the origin.
	Version(ctx context.Context) (string, error)
}
