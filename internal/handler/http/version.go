package http

import (
	"net/http"

	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

func (h *Handler) getBuildInfo(w http.ResponseWriter, r *http.Request) {
	build := h.services.AppInfoService.GetBuildInfo(r.Context())

	utils.WriteJSON(w, models.BuildInfoResponse{
		Version: build.BuildVersion(),
		Date:    build.BuildDate(),
		Commit:  build.BuildCommit(),
	}, http.StatusOK)
}
