// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the server-side proof of an authenticated browser context.
//
// A session is live iff RevokedAt is nil and the current time is not after
// ExpiresAt. ExpiresAt is rolled forward on every authenticated request that
// uses the session (rolling idle timeout).
type Session struct {
	// SessionID is the unguessable session identifier carried in the cookie.
	SessionID string `json:"session_id"`

	// UserID references the owning user.
	UserID string `json:"user_id"`

	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`

	// ExpiresAt is the idle-timeout horizon.
	ExpiresAt time.Time `json:"expires_at"`

	// RevokedAt is set once on logout or idle-timeout eviction.
	RevokedAt *time.Time `json:"revoked_at,omitempty"`

	// Demo marks sessions of synthetic demo users.
	Demo bool `json:"demo"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// IsRevoked reports whether the session has been revoked.
func (s Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsExpired reports whether the idle-timeout horizon has passed at now.
func (s Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// IsLive reports whether the session is neither revoked nor expired at now.
func (s Session) IsLive(now time.Time) bool {
	return !s.IsRevoked() && !s.IsExpired(now)
}
