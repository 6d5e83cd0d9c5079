package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withRealIP, h.withTraceID, h.withLogging, middleware.Recoverer)

	routes := func(r chi.Router) {
		r.Use(h.allowList, h.auth)

		r.With(withGZip).Get("/manifest", h.getManifests)
		r.Get("/archive", h.getArchive)
		r.Post("/archive-partial", h.postPartialArchive)
		r.Get("/file", h.getFile)
		r.Get("/version", h.getServerVersion)
	}

	if h.prefix == "" {
		router.Group(routes)
	} else {
		router.Route(h.prefix, routes)
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
