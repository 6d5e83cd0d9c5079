// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tree-sync/internal/archive"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/service"
	"github.com/MKhiriev/go-tree-sync/internal/store"
)

// extractBody unpacks an archive response into a fresh directory and
// returns its files.
func extractBody(t *testing.T, body []byte) map[string]string {
	t.Helper()
	dst := t.TempDir()
	_, err := archive.NewExtractor("", logger.Nop()).Extract(context.Background(), bytes.NewReader(body), dst)
	require.NoError(t, err)

	files := map[string]string{}
	err = filepath.WalkDir(dst, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dst, p)
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

// ── full archive ─────────────────────────────────────────────────────────────

func TestGetArchive(t *testing.T) {
	base := t.TempDir()
	files := map[string]string{"a.txt": "hi", "sub/deep/b.txt": "bye", "empty": ""}
	writeFiles(t, filepath.Join(base, "content"), files)
	h := newOriginHandler(t, base)

	rec := serve(h, authorized(http.MethodGet, "/_sync/archive?path=content", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/gzip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="content.tar.gz"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, files, extractBody(t, rec.Body.Bytes()))
}

func TestGetArchive_Errors(t *testing.T) {
	h := newOriginHandler(t, t.TempDir())

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"missing key", "", http.StatusBadRequest},
		{"unknown key", "?path=media", http.StatusBadRequest},
		{"root directory absent", "?path=assets", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, authorized(http.MethodGet, "/_sync/archive"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
			assert.Empty(t, rec.Header().Get("Content-Disposition"))
		})
	}
}

// ── partial archive ──────────────────────────────────────────────────────────

func TestPostPartialArchive(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, filepath.Join(base, "content"), map[string]string{"a.txt": "hi", "b.txt": "bye", "sub/c.txt": "c"})
	writeFiles(t, base, map[string]string{"secret.txt": "TOPSECRET"})
	h := newOriginHandler(t, base)

	body := `{"path":"content","files":["a.txt","sub/c.txt","../secret.txt","/etc/passwd","missing.txt","a.txt"]}`
	rec := serve(h, authorized(http.MethodPost, "/_sync/archive-partial", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"a.txt": "hi", "sub/c.txt": "c"}, extractBody(t, rec.Body.Bytes()))
}

func TestPostPartialArchive_Errors(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, filepath.Join(base, "content"), map[string]string{"a.txt": "hi"})
	h := newOriginHandler(t, base)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"invalid json", `{"path":`, http.StatusBadRequest},
		{"unknown key", `{"path":"media","files":["a.txt"]}`, http.StatusBadRequest},
		{"empty file list", `{"path":"content","files":[]}`, http.StatusBadRequest},
		{"nothing resolves", `{"path":"content","files":["../x","nope.txt"]}`, http.StatusNotFound},
		{"root directory absent", `{"path":"assets","files":["x.css"]}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, authorized(http.MethodPost, "/_sync/archive-partial", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ── streaming failures ───────────────────────────────────────────────────────

func TestStreamArchive_FailureBeforeFirstByte(t *testing.T) {
	origin := &stubOriginService{
		fullArchive: func(ctx context.Context, key string) (*service.ArchiveJob, error) {
			return service.NewArchiveJob(key, 0, func(ctx context.Context, w io.Writer) (archive.Stats, error) {
				return archive.Stats{}, fmt.Errorf("open root: %w", store.ErrRootNotFound)
			}), nil
		},
	}
	h := newTestHandler(t, origin, testServerConfig())

	rec := serve(h, authorized(http.MethodGet, "/_sync/archive?path=content", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestStreamArchive_FailureMidStreamAbortsConnection(t *testing.T) {
	origin := &stubOriginService{
		fullArchive: func(ctx context.Context, key string) (*service.ArchiveJob, error) {
			return service.NewArchiveJob(key, 0, func(ctx context.Context, w io.Writer) (archive.Stats, error) {
				if _, err := w.Write(bytes.Repeat([]byte{0x1f}, 1024)); err != nil {
					return archive.Stats{}, err
				}
				return archive.Stats{}, fmt.Errorf("read file: %w", os.ErrPermission)
			}), nil
		},
	}
	srv := httptest.NewServer(newTestHandler(t, origin, testServerConfig()).Init())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/_sync/archive?path=content", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, err = io.ReadAll(resp.Body)
	assert.Error(t, err, "a truncated archive must not look like a complete one")
}

func TestFlushWriter_CountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	fw := newFlushWriter(rec)

	_, err := fw.Write([]byte("abc"))
	require.NoError(t, err)
	_, err = fw.Write([]byte("de"))
	require.NoError(t, err)

	assert.EqualValues(t, 5, fw.written)
	assert.True(t, rec.Flushed)
	assert.Equal(t, "abcde", rec.Body.String())
}
