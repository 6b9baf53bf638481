package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// jsonBodyLimit caps the small JSON bodies of the retrieval routes.
const jsonBodyLimit = 64 << 10

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(withGZipRequest, middleware.Compress(compressionLevel))

	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/version/build", h.getBuildInfo)

	// multipart routes carrying a whole document
	router.Group(func(r chi.Router) {
		if h.maxUploadSize > 0 {
			r.Use(middleware.RequestSize(h.maxUploadSize))
		}
		r.Post("/api/hash", h.hashDocument)
		r.Post("/api/documents", h.uploadDocument)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequestSize(jsonBodyLimit))
		r.Post("/api/documents/retrieve", h.retrieveDocument)
		r.Post("/api/documents/{hash}/download", h.downloadDocument)
		r.Post("/api/documents/{hash}/registration", h.completeRegistration)
	})

	router.Get("/api/documents", h.listDocuments)
	router.Get("/api/documents/{hash}", h.lookupDocument)
	router.Get("/api/documents/{hash}/verify", h.verifyDocument)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
