// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/models"
)

type sessionRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("SessionRepository created")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func scanSession(row rowScanner) (models.Session, error) {
	var session models.Session
	err := row.Scan(
		&session.SessionID,
		&session.UserID,
		&session.CreatedAt,
		&session.LastActivityAt,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.Demo,
	)
	return session, err
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertSessionQuery(session)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.executor(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error inserting session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	query, args, err := buildSelectSessionQuery(sessionID)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.querySession(ctx, "*sessionRepository.GetSession", query, args)
}

func (r *sessionRepository) TouchSession(ctx context.Context, sessionID string, lastActivityAt, expiresAt time.Time) (models.Session, error) {
	query, args, err := buildTouchSessionQuery(sessionID, lastActivityAt, expiresAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.querySession(ctx, "*sessionRepository.TouchSession", query, args)
}

func (r *sessionRepository) RevokeSession(ctx context.Context, sessionID string, now time.Time) (models.Session, error) {
	query, args, err := buildRevokeSessionQuery(sessionID, now)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.querySession(ctx, "*sessionRepository.RevokeSession", query, args)
}

func (r *sessionRepository) DeleteStaleSessions(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteStaleSessionsQuery(before)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteStaleSessions").Msg("error deleting stale sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return deleted, nil
}

// querySession runs a single-row query returning session columns.
func (r *sessionRepository) querySession(ctx context.Context, funcName, query string, args []any) (models.Session, error) {
	session, err := scanSession(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error querying session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}
