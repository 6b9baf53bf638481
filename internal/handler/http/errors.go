// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while decoding requests, before the service layer
// is reached.
var (
	// ErrInvalidRequestBody is returned when a JSON body cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrInvalidMultipartForm is returned when an upload is not a readable
	// multipart form.
	ErrInvalidMultipartForm = errors.New("invalid multipart form")

	// ErrMissingDocument is returned when the multipart form has no
	// "document" file part.
	ErrMissingDocument = errors.New("missing `document` file")

	// ErrInvalidQueryParameter is returned for unparsable listing parameters.
	ErrInvalidQueryParameter = errors.New("invalid query parameter")

	// ErrRequestTooLarge is returned when the body exceeds the upload limit.
	ErrRequestTooLarge = errors.New("request body too large")
)
