// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-tree-sync/internal/utils"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// It walks every route registered on router, including those of mounted
// sub-routers, and collects the methods registered for the requested path.
// The response is 405 with an "Allow" header listing them, or 404 when no
// route has that exact pattern.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router chi.Routes) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var methods []string
		_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if route == r.URL.Path {
				methods = append(methods, method)
			}
			return nil
		})

		if len(methods) == 0 {
			utils.WriteJSONError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		sort.Strings(methods)
		w.Header().Set("Allow", strings.Join(methods, ", "))
		utils.WriteJSONError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}
