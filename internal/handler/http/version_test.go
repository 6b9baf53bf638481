package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetServerVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{name: "semantic version", version: "1.2.3"},
		{name: "empty version", version: ""},
		{name: "special characters", version: "v2.0.0-beta+build.42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, info := newTestHandler(t, config.Server{})
			info.EXPECT().GetAppVersion(gomock.Any()).Return(tt.version)

			rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/version", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.version, rec.Body.String())
		})
	}
}

func TestGetServerVersion_WrongMethod(t *testing.T) {
	h, _, _ := newTestHandler(t, config.Server{})

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/version", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBuildInfo(t *testing.T) {
	h, _, info := newTestHandler(t, config.Server{})
	info.EXPECT().GetBuildInfo(gomock.Any()).Return(models.NewAppBuildInfo("1.0.0", "2026-10-01", "abc123"))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/version/build", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.BuildInfoResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, models.BuildInfoResponse{Version: "1.0.0", Date: "2026-10-01", Commit: "abc123"}, got)
}
