// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-med-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts and their lockout state.
// Every method joins the transaction carried by ctx, if any.
type UserRepository interface {
	// CreateUser inserts user and returns the stored row.
	// A duplicate email yields ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail looks a user up by normalized email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByEmailForUpdate is FindUserByEmail with a row lock held until
	// the surrounding transaction ends.
	FindUserByEmailForUpdate(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	// UpdateLockoutState writes failed_attempts and lock_until of user.
	UpdateLockoutState(ctx context.Context, user models.User) error
}

// SessionRepository persists login sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, sessionID string) (models.Session, error)
	// TouchSession sets last activity and expiry in one statement.
	TouchSession(ctx context.Context, sessionID string, lastActivityAt, expiresAt time.Time) (models.Session, error)
	// RevokeSession sets revoked_at to now unless already set.
	RevokeSession(ctx context.Context, sessionID string, now time.Time) (models.Session, error)
	// DeleteStaleSessions removes sessions revoked or expired before the
	// given instant and reports how many rows were deleted.
	DeleteStaleSessions(ctx context.Context, before time.Time) (int64, error)
}

// Transactor runs a unit of work inside one database transaction.
type Transactor interface {
	// WithinTransaction calls fn with a context carrying the transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
