// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/service"
	"github.com/MKhiriev/go-tree-sync/models"
)

// maxPartialRequestBody bounds the JSON body of a partial archive request.
const maxPartialRequestBody = 32 << 20

// getArchive streams the whole root named by the "path" query parameter.
func (h *Handler) getArchive(w http.ResponseWriter, r *http.Request) {
	job, err := h.services.OriginService.FullArchive(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.streamArchive(w, r, job)
}

// postPartialArchive streams the listed files of one root. Files that do not
// resolve safely are left out of the archive.
func (h *Handler) postPartialArchive(w http.ResponseWriter, r *http.Request) {
	var req models.PartialArchiveRequest

	body := http.MaxBytesReader(w, r.Body, maxPartialRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: decode body: %v", service.ErrInvalidRequest, err))
		return
	}

	job, err := h.services.OriginService.PartialArchive(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.streamArchive(w, r, job)
}

// streamArchive writes job as a chunked gzip response. Once the first byte
// is out the status cannot change, so a failure after that aborts the
// connection and the client sees a truncated transfer.
func (h *Handler) streamArchive(w http.ResponseWriter, r *http.Request, job *service.ArchiveJob) {
	log := logger.FromRequest(r)

	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, job.FileName()))

	fw := newFlushWriter(w)
	stats, err := job.Stream(r.Context(), fw)
	if err != nil {
		if fw.written == 0 {
			w.Header().Del("Content-Disposition")
			h.writeError(w, r, err)
			return
		}
		log.Err(err).Str("root", job.Key).Int64("sent", fw.written).Msg("archive stream aborted")
		panic(http.ErrAbortHandler)
	}

	log.Info().
		Str("root", job.Key).
		Int("files", stats.Files).
		Int64("bytes", stats.Bytes).
		Int64("sent", fw.written).
		Msg("archive streamed")
}

// flushWriter pushes every write to the client instead of letting the
// server buffer the response.
type flushWriter struct {
	w       io.Writer
	rc      *http.ResponseController
	written int64
}

func newFlushWriter(w http.ResponseWriter) *flushWriter {
	return &flushWriter{w: w, rc: http.NewResponseController(w)}
}

func (f *flushWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	f.written += int64(n)
	if err != nil {
		return n, err
	}
	if err = f.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return n, err
	}
	return n, nil
}
