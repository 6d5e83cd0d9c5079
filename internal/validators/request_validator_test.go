// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-tree-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestValidator() Validator {
	return NewRequestValidator([]string{"content", "assets"})
}

// ---------------------------------------------------------------------------
// Validate: dispatch
// ---------------------------------------------------------------------------

func TestRequestValidator_UnsupportedType(t *testing.T) {
	v := newTestValidator()

	err := v.Validate(context.Background(), 42)

	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestRequestValidator_UnknownField(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.PartialArchiveRequest{}, "nope"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.FileRequest{}, "nope"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.PullOptions{}, "nope"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// PartialArchiveRequest
// ---------------------------------------------------------------------------

func TestRequestValidator_PartialArchiveRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.PartialArchiveRequest
		fields  []string
		wantErr error
	}{
		{
			name: "valid",
			req:  models.PartialArchiveRequest{Path: "content", Files: []string{"a.txt"}},
		},
		{
			name:    "empty key",
			req:     models.PartialArchiveRequest{Files: []string{"a.txt"}},
			wantErr: ErrEmptyRootKey,
		},
		{
			name:    "unknown key",
			req:     models.PartialArchiveRequest{Path: "secrets", Files: []string{"a.txt"}},
			wantErr: ErrUnknownRootKey,
		},
		{
			name:    "empty file list",
			req:     models.PartialArchiveRequest{Path: "content"},
			wantErr: ErrEmptyFileList,
		},
		{
			name:   "files only scoped",
			req:    models.PartialArchiveRequest{Path: "secrets", Files: []string{"a.txt"}},
			fields: []string{FieldFiles},
		},
		{
			name:   "unsafe paths are left to storage",
			req:    models.PartialArchiveRequest{Path: "assets", Files: []string{"../etc/passwd"}},
			fields: nil,
		},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req, tt.fields...)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequestValidator_PartialArchiveRequestPointer(t *testing.T) {
	v := newTestValidator()

	err := v.Validate(context.Background(), &models.PartialArchiveRequest{Path: "content"})

	assert.ErrorIs(t, err, ErrEmptyFileList)
}

// ---------------------------------------------------------------------------
// FileRequest
// ---------------------------------------------------------------------------

func TestRequestValidator_FileRequest(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, models.FileRequest{Key: "content", Path: "a.txt"}))
	assert.ErrorIs(t, v.Validate(ctx, models.FileRequest{Key: "content"}), ErrEmptyFilePath)
	assert.ErrorIs(t, v.Validate(ctx, &models.FileRequest{Path: "a.txt"}), ErrEmptyRootKey)
	assert.ErrorIs(t, v.Validate(ctx, models.FileRequest{Key: "x", Path: "a.txt"}), ErrUnknownRootKey)
}

// ---------------------------------------------------------------------------
// PullOptions
// ---------------------------------------------------------------------------

func TestRequestValidator_PullOptions(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, models.PullOptions{}))
	require.NoError(t, v.Validate(ctx, models.PullOptions{Keys: []string{"assets", "content"}}))

	err := v.Validate(ctx, &models.PullOptions{Keys: []string{"content", "media"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRootKey)
	assert.Contains(t, err.Error(), `"media"`)
}
