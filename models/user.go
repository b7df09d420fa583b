// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes, the password credential and the embedded
// lockout state. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the opaque unique identifier of the user (UUIDv7 string).
	UserID string `json:"user_id"`

	// Email is the normalized (trimmed, lower-cased) e-mail address.
	// It is unique across all users.
	Email string `json:"email"`

	// DisplayName is the optional human-readable name of the user.
	DisplayName string `json:"display_name,omitempty"`

	// PasswordHash is the encoded one-way password hash. Never serialized.
	PasswordHash string `json:"-"`

	// Active reports whether the account may authenticate.
	Active bool `json:"-"`

	// Demo marks synthetic users created for demo sessions.
	Demo bool `json:"demo"`

	// FailedAttempts is the number of consecutive failed login attempts.
	FailedAttempts int `json:"-"`

	// LockUntil is the moment the current lockout expires, nil when the
	// account has never been locked or the lock was cleared.
	LockUntil *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// NormalizeEmail returns the canonical form of an e-mail address used for
// lookups and uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
