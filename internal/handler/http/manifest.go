package http

import (
	"net/http"

	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/utils"
)

// getManifests serves the manifests of the roots listed in the comma
// separated "paths" query parameter, or of every configured root.
func (h *Handler) getManifests(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	keys := config.SplitList(r.URL.Query().Get("paths"))

	manifests, err := h.services.OriginService.Manifests(r.Context(), keys)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, manifests, http.StatusOK); err != nil {
		log.Err(err).Msg("failed to write manifests")
		return
	}
	log.Debug().Strs("requested", keys).Int("roots", len(manifests)).Msg("manifests served")
}

// writeError answers with the status mapped from err. Server-side failures
// are reported with a generic message; the details go to the log.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
		message = http.StatusText(status)
	} else {
		logger.FromRequest(r).Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	utils.WriteJSONError(w, message, status)
}
