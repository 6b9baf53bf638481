// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns a handler meant for [chi.Mux.MethodNotAllowed].
//
// Instead of chi's 405, a request whose method is not registered for the
// matched static route is answered with 404. Only exact patterns are
// compared, so parameterised routes such as /api/documents/{hash} always
// answer 404 to an unsupported method. A request whose method is registered
// is forwarded to the router.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			utils.WriteError(w, "not found", http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
