package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-tree-sync/internal/service"
	"github.com/MKhiriev/go-tree-sync/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", service.ErrInvalidRequest, http.StatusBadRequest},
		{"unknown root", fmt.Errorf("validation: %w", service.ErrUnknownRoot), http.StatusBadRequest},
		{"no files requested", service.ErrNoFilesRequested, http.StatusBadRequest},
		{"no valid files", service.ErrNoValidFiles, http.StatusNotFound},
		{"root not found", service.ErrRootNotFound, http.StatusNotFound},
		{"file not found wrapping unsafe path", fmt.Errorf("%w: %w", service.ErrFileNotFound, store.ErrUnsafePath), http.StatusNotFound},
		{"store root not found", fmt.Errorf("open: %w", store.ErrRootNotFound), http.StatusNotFound},
		{"client went away", context.Canceled, statusClientClosedRequest},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
