// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBufferedHandler returns a Handler logging into buf, emptied of the
// construction log line.
func newBufferedHandler(buf *bytes.Buffer) *Handler {
	h := NewHandler(&service.Services{}, config.Server{}, &logger.Logger{Logger: zerolog.New(buf)})
	buf.Reset()
	return h
}

// ---- trace id ----

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name          string
		headerTraceID string
	}{
		{name: "echoes the caller's trace id", headerTraceID: "trace-123"},
		{name: "generates a trace id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&service.Services{}, config.Server{}, logger.Nop())

			var fromContext string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := utils.GetTraceIDFromContext(r.Context())
				assert.True(t, ok)
				fromContext = id
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.headerTraceID != "" {
				req.Header.Set(traceIDHeader, tt.headerTraceID)
			}
			rec := httptest.NewRecorder()

			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			assert.Equal(t, got, fromContext)
			if tt.headerTraceID != "" {
				assert.Equal(t, tt.headerTraceID, got)
			} else {
				assert.Len(t, got, 36)
			}
		})
	}
}

func TestWithTraceID_GeneratesUniqueIDs(t *testing.T) {
	h := NewHandler(&service.Services{}, config.Server{}, logger.Nop())
	handler := h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	seen := map[string]bool{}
	for range 50 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get(traceIDHeader)
		assert.False(t, seen[id], "duplicate trace id %s", id)
		seen[id] = true
	}
}

// ---- logging ----

func TestWithLogging_WritesAccessLog(t *testing.T) {
	var buf bytes.Buffer
	h := newBufferedHandler(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/documents?limit=1", nil)
	req.Header.Set(traceIDHeader, "trace-abc")

	h.withTraceID(h.withLogging(next)).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-abc", entry["trace_id"])
	assert.Equal(t, "/api/documents?limit=1", entry["uri"])
	assert.Equal(t, http.MethodPost, entry["method"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.EqualValues(t, len("short and stout"), entry["size"])
	assert.Contains(t, entry, "duration")
}

func TestWriteError_DoesNotLeakCause(t *testing.T) {
	var buf bytes.Buffer
	h := newBufferedHandler(&buf)

	rec := httptest.NewRecorder()
	h.writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), service.ErrDecryption)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"document could not be opened"}`, rec.Body.String())
}

// ---- gzip ----

func gzipped(t *testing.T, s string) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func TestWithGZipRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       io.Reader
		encoding   string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "inflates gzip body",
			body:       gzipped(t, `{"password":"x"}`),
			encoding:   "gzip",
			wantStatus: http.StatusOK,
			wantBody:   `{"password":"x"}`,
		},
		{
			name:       "plain body passes through",
			body:       strings.NewReader("plain"),
			wantStatus: http.StatusOK,
			wantBody:   "plain",
		},
		{
			name:       "corrupt gzip",
			body:       strings.NewReader("not gzip at all"),
			encoding:   "gzip",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Empty(t, r.Header.Get("Content-Encoding"))
				b, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				require.NoError(t, r.Body.Close())
				got = string(b)
			})

			req := httptest.NewRequest(http.MethodPost, "/", tt.body)
			if tt.encoding != "" {
				req.Header.Set("Content-Encoding", tt.encoding)
			}
			rec := httptest.NewRecorder()

			withGZipRequest(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestPooledGZipBody_CloseTwice(t *testing.T) {
	zr, err := gzip.NewReader(gzipped(t, "x"))
	require.NoError(t, err)

	body := &pooledGZipBody{Reader: zr, body: io.NopCloser(strings.NewReader(""))}
	assert.NoError(t, body.Close())
	assert.NoError(t, body.Close())
}

// ---- method check ----

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/documents", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/api/documents", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Get("/api/documents/{hash}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/api/documents", http.StatusOK},
		{http.MethodPost, "/api/documents", http.StatusCreated},
		{http.MethodDelete, "/api/documents", http.StatusNotFound},
		{http.MethodPut, "/api/documents", http.StatusNotFound},
		{http.MethodGet, "/api/documents/abc", http.StatusOK},
		{http.MethodDelete, "/api/documents/abc", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}
