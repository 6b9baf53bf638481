// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/go-chi/chi/v5"
)

const (
	documentFormField = "document"
	passwordFormField = "password"
	categoryFormField = "category"

	// multipartMemory is the part of a multipart body kept in memory before
	// spilling to temporary files.
	multipartMemory = 8 << 20
)

type uploadedDocument struct {
	content  []byte
	filename string
	mimeType string
}

func (h *Handler) uploadDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	doc, err := readDocument(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.VaultService.Upload(r.Context(), models.UploadRequest{
		Content:  doc.content,
		Password: r.FormValue(passwordFormField),
		Filename: doc.filename,
		MimeType: doc.mimeType,
		Category: r.FormValue(categoryFormField),
	})
	switch {
	case err == nil:
		utils.WriteJSON(w, result, http.StatusCreated)
	case errors.Is(err, service.ErrPartialUpload):
		log.Warn().Str("content_hash", result.ContentHash).Msg("document stored, registration pending")
		utils.WriteJSON(w, result, http.StatusAccepted)
	default:
		h.writeError(w, r, err)
	}
}

func (h *Handler) hashDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	hash := h.services.VaultService.Fingerprint(doc.content)
	utils.WriteJSON(w, models.HashResponse{Hash: hash}, http.StatusOK)
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.DocumentFilter{
		Category: query.Get("category"),
		Query:    query.Get("q"),
	}
	if rawLimit := query.Get("limit"); rawLimit != "" {
		limit, err := strconv.ParseUint(rawLimit, 10, 64)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: limit: %w", ErrInvalidQueryParameter, err))
			return
		}
		filter.Limit = limit
	}

	records, err := h.services.VaultService.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []models.DocumentRecord{}
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) retrieveDocument(w http.ResponseWriter, r *http.Request) {
	var req models.RetrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, classifyBodyError(err, ErrInvalidRequestBody))
		return
	}

	result, err := h.services.VaultService.Retrieve(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeDocument(w, result)
}

func (h *Handler) lookupDocument(w http.ResponseWriter, r *http.Request) {
	record, err := h.services.VaultService.Lookup(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) verifyDocument(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	registered, err := h.services.VaultService.Verify(r.Context(), hash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.VerifyResponse{Hash: hash, Registered: registered}, http.StatusOK)
}

func (h *Handler) downloadDocument(w http.ResponseWriter, r *http.Request) {
	var req models.DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, classifyBodyError(err, ErrInvalidRequestBody))
		return
	}

	result, err := h.services.VaultService.RetrieveDocument(r.Context(), chi.URLParam(r, "hash"), req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeDocument(w, result)
}

func (h *Handler) completeRegistration(w http.ResponseWriter, r *http.Request) {
	record, err := h.services.VaultService.CompleteRegistration(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

// writeError logs err with the request logger and answers with the mapped
// status and a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status, message := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, message, status)
}

// readDocument extracts the "document" file part of a multipart upload.
// The part's Content-Type is used as the mime type, sniffed from the
// content when absent.
func readDocument(r *http.Request) (uploadedDocument, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return uploadedDocument{}, classifyBodyError(err, ErrInvalidMultipartForm)
	}

	file, header, err := r.FormFile(documentFormField)
	if err != nil {
		return uploadedDocument{}, fmt.Errorf("%w: %w", ErrMissingDocument, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return uploadedDocument{}, classifyBodyError(err, ErrInvalidMultipartForm)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(content)
	}

	return uploadedDocument{
		content:  content,
		filename: header.Filename,
		mimeType: mimeType,
	}, nil
}

func classifyBodyError(err, fallback error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: %w", ErrRequestTooLarge, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}

// writeDocument streams decrypted content as an attachment.
func writeDocument(w http.ResponseWriter, result models.RetrieveResult) {
	contentType := result.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	filename := result.Filename
	if filename == "" {
		filename = "document"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Content)
}
