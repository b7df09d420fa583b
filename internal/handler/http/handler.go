package http

import (
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/config"
	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/service"
)

type Handler struct {
	services *service.Services

	cookie         config.Cookie
	idleTimeout    time.Duration
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		cookie:         cfg.Cookie,
		idleTimeout:    cfg.Auth.IdleTimeout,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
