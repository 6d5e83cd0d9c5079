package http

import (
	"fmt"
	"net/http"
	"os"
	"path"

	"github.com/MKhiriev/go-tree-sync/internal/service"
	"github.com/MKhiriev/go-tree-sync/models"
)

// getFile serves one file addressed as "key/rel/path" in the "path" query
// parameter.
func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("path")
	if raw == "" {
		h.writeError(w, r, fmt.Errorf("%w: path is required", service.ErrInvalidRequest))
		return
	}

	resolved, err := h.services.OriginService.File(r.Context(), models.ParseFileRequest(raw))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	f, err := os.Open(resolved.Path)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", service.ErrFileNotFound, err))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		h.writeError(w, r, fmt.Errorf("%w: %s", service.ErrFileNotFound, resolved.Rel))
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, path.Base(resolved.Rel)))
	http.ServeContent(w, r, resolved.Rel, info.ModTime(), f)
}
