package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tree-sync/internal/service"
	"github.com/MKhiriev/go-tree-sync/internal/store"
)

// statusClientClosedRequest is the de-facto status for requests abandoned by
// the client before a response was produced.
const statusClientClosedRequest = 499

var errorStatusMap = map[error]int{
	service.ErrInvalidRequest:   http.StatusBadRequest,
	service.ErrUnknownRoot:      http.StatusBadRequest,
	service.ErrNoFilesRequested: http.StatusBadRequest,
	service.ErrNoValidFiles:     http.StatusNotFound,
	service.ErrRootNotFound:     http.StatusNotFound,
	service.ErrFileNotFound:     http.StatusNotFound,

	store.ErrRootNotFound:   http.StatusNotFound,
	store.ErrFileNotFound:   http.StatusNotFound,
	store.ErrUnsafePath:     http.StatusNotFound,
	store.ErrNotRegularFile: http.StatusNotFound,

	context.Canceled: statusClientClosedRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
