package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-doc-vault/internal/service"
)

type errorStatus struct {
	target  error
	status  int
	message string
}

// errorStatuses is matched in order. ErrPartialUpload must precede
// ErrRegistryUnavailable, which it also wraps.
var errorStatuses = []errorStatus{
	{ErrRequestTooLarge, http.StatusRequestEntityTooLarge, "request body too large"},
	{ErrInvalidRequestBody, http.StatusBadRequest, "invalid request"},
	{ErrInvalidMultipartForm, http.StatusBadRequest, "invalid request"},
	{ErrMissingDocument, http.StatusBadRequest, "invalid request"},
	{ErrInvalidQueryParameter, http.StatusBadRequest, "invalid request"},

	{service.ErrPartialUpload, http.StatusAccepted, "document stored, registration pending"},
	{service.ErrValidation, http.StatusBadRequest, "invalid request"},
	{service.ErrNotFound, http.StatusNotFound, "document not found"},
	{service.ErrDuplicateDocument, http.StatusConflict, "document already exists"},
	{service.ErrDecryption, http.StatusUnprocessableEntity, "document could not be opened"},
	{service.ErrIntegrityMismatch, http.StatusUnprocessableEntity, "document could not be opened"},
	{service.ErrStoreUnavailable, http.StatusServiceUnavailable, "storage temporarily unavailable"},
	{service.ErrRegistryUnavailable, http.StatusServiceUnavailable, "storage temporarily unavailable"},
	{service.ErrEncryption, http.StatusInternalServerError, "internal error"},
}

// statusFromError returns the status code and client-safe message for err.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, "internal error"
}
