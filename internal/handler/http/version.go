package http

import (
	"net/http"

	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/utils"
)

// getServerVersion answers with the origin version as plain text. Pullers
// compare it across runs, so it must never be served from a cache.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Cache-Control", "no-store")
	if _, err := utils.WriteText(w, version, http.StatusOK); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("failed to write version")
	}
}
