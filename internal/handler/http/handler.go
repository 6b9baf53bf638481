package http

import (
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/service"
)

type Handler struct {
	services *service.Services

	maxUploadSize  int64
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		maxUploadSize:  cfg.MaxUploadSize,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
