// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-med-tracker/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"user_id",
	"email",
	"display_name",
	"password_hash",
	"active",
	"demo",
	"failed_attempts",
	"lock_until",
	"created_at",
	"updated_at",
}

var sessionColumns = []string{
	"session_id",
	"user_id",
	"created_at",
	"last_activity_at",
	"expires_at",
	"revoked_at",
	"demo",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func buildInsertUserQuery(user models.User) (string, []any, error) {
	return psql.Insert(models.User{}.TableName()).
		Columns("user_id", "email", "display_name", "password_hash", "active", "demo", "failed_attempts", "created_at", "updated_at").
		Values(user.UserID, user.Email, user.DisplayName, user.PasswordHash, user.Active, user.Demo, user.FailedAttempts, user.CreatedAt, user.UpdatedAt).
		Suffix(returning(userColumns)).
		ToSql()
}

// buildSelectUserQuery selects one user by a single column. forUpdate adds a
// row lock.
func buildSelectUserQuery(column string, value any, forUpdate bool) (string, []any, error) {
	query := psql.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{column: value})

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	return query.ToSql()
}

func buildUpdateLockoutQuery(user models.User) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("failed_attempts", user.FailedAttempts).
		Set("lock_until", user.LockUntil).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"user_id": user.UserID}).
		ToSql()
}

func buildInsertSessionQuery(session models.Session) (string, []any, error) {
	return psql.Insert(models.Session{}.TableName()).
		Columns(sessionColumns...).
		Values(session.SessionID, session.UserID, session.CreatedAt, session.LastActivityAt, session.ExpiresAt, session.RevokedAt, session.Demo).
		ToSql()
}

func buildSelectSessionQuery(sessionID string) (string, []any, error) {
	return psql.Select(sessionColumns...).
		From(models.Session{}.TableName()).
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
}

func buildTouchSessionQuery(sessionID string, lastActivityAt, expiresAt time.Time) (string, []any, error) {
	return psql.Update(models.Session{}.TableName()).
		Set("last_activity_at", lastActivityAt).
		Set("expires_at", expiresAt).
		Where(sq.Eq{"session_id": sessionID}).
		Suffix(returning(sessionColumns)).
		ToSql()
}

// buildRevokeSessionQuery keeps the first revocation time on repeated calls.
func buildRevokeSessionQuery(sessionID string, now time.Time) (string, []any, error) {
	return psql.Update(models.Session{}.TableName()).
		Set("revoked_at", sq.Expr("COALESCE(revoked_at, ?)", now)).
		Where(sq.Eq{"session_id": sessionID}).
		Suffix(returning(sessionColumns)).
		ToSql()
}

func buildDeleteStaleSessionsQuery(before time.Time) (string, []any, error) {
	return psql.Delete(models.Session{}.TableName()).
		Where(sq.Or{
			sq.Lt{"revoked_at": before},
			sq.Lt{"expires_at": before},
		}).
		ToSql()
}
