// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/config"
	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/store"
	"github.com/MKhiriev/go-med-tracker/internal/utils"
	"github.com/MKhiriev/go-med-tracker/models"
)

// sessionService is the concrete implementation of SessionService.
// Session ids come from a KSUID generator; every timestamp comes from clock.
type sessionService struct {
	repository  store.SessionRepository
	ids         utils.IDGenerator
	clock       utils.Clock
	idleTimeout time.Duration
	grace       time.Duration
	logger      *logger.Logger
}

// NewSessionService constructs a SessionService with the idle window and
// cleanup grace taken from cfg.
func NewSessionService(repository store.SessionRepository, cfg config.Auth, clock utils.Clock, logger *logger.Logger) SessionService {
	return &sessionService{
		repository:  repository,
		ids:         utils.NewKSUIDGenerator(),
		clock:       clock,
		idleTimeout: cfg.IdleTimeout,
		grace:       cfg.SessionCleanupGrace,
		logger:      logger,
	}
}

func (s *sessionService) Create(ctx context.Context, userID string, demo bool) (models.Session, error) {
	now := s.clock.Now()
	session := models.Session{
		SessionID:      s.ids.Generate(),
		UserID:         userID,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.idleTimeout),
		Demo:           demo,
	}

	if err := s.repository.CreateSession(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Create").Str("user_id", userID).Msg("session creation failed")
		return models.Session{}, fmt.Errorf("session creation failed: %w", err)
	}

	return session, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (models.Session, error) {
	session, err := s.repository.GetSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, fmt.Errorf("session lookup failed: %w", err)
	}

	return session, nil
}

func (s *sessionService) Touch(ctx context.Context, session models.Session) (models.Session, error) {
	now := s.clock.Now()

	touched, err := s.repository.TouchSession(ctx, session.SessionID, now, now.Add(s.idleTimeout))
	if err != nil {
		return models.Session{}, fmt.Errorf("session touch failed: %w", err)
	}

	return touched, nil
}

func (s *sessionService) Revoke(ctx context.Context, session models.Session) (models.Session, error) {
	revoked, err := s.repository.RevokeSession(ctx, session.SessionID, s.clock.Now())
	if err != nil {
		return models.Session{}, fmt.Errorf("session revoke failed: %w", err)
	}

	return revoked, nil
}

func (s *sessionService) Cleanup(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repository.DeleteStaleSessions(ctx, cutoff.Add(-s.grace))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Cleanup").Msg("session cleanup failed")
		return 0, fmt.Errorf("session cleanup failed: %w", err)
	}

	return deleted, nil
}

func (s *sessionService) IsLive(session models.Session) bool {
	return session.IsLive(s.clock.Now())
}
