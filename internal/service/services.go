package service

import (
	"fmt"

	"github.com/MKhiriev/go-med-tracker/internal/audit"
	"github.com/MKhiriev/go-med-tracker/internal/config"
	"github.com/MKhiriev/go-med-tracker/internal/crypto"
	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/store"
	"github.com/MKhiriev/go-med-tracker/internal/utils"
)

type Services struct {
	AuthService    AuthService
	SessionService SessionService
	AppInfoService AppInfoService

	// Recorder receives audit events raised outside the auth service, such as
	// idle-timeout evictions detected by the transport.
	Recorder audit.Recorder
}

// NewServices wires the service layer over storages. All services share one
// system clock so lockout and session timestamps agree.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, recorder audit.Recorder, logger *logger.Logger) (*Services, error) {
	return NewServicesWithClock(storages, cfg, recorder, utils.NewSystemClock(), logger)
}

// NewServicesWithClock is NewServices with an explicit time source.
func NewServicesWithClock(storages *store.Storages, cfg *config.StructuredConfig, recorder audit.Recorder, clock utils.Clock, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	recorder = audit.Safe(recorder)
	sessions := NewSessionService(storages.SessionRepository, cfg.Auth, clock, logger)
	auth := NewAuthService(storages, sessions, crypto.NewPasswordHasher(), recorder, cfg, clock, logger)

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(auth),
		SessionService: sessions,
		AppInfoService: appInfo,
		Recorder:       recorder,
	}, nil
}
