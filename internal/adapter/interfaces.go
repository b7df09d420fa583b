// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a typed client for the go-med-tracker auth API.
//
// [AuthClient] keeps the session cookie in a cookie jar and the bearer token
// returned by register, login and demo, so a caller can drive a full session
// with plain method calls. Non-2xx responses come back as *[APIError], which
// unwraps to the sentinel errors in errors.go for use with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-med-tracker/models"
)

// AuthClient talks to the auth endpoints of a running server.
type AuthClient interface {
	// Register creates an account and signs it in.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserResponse, error)

	// Login signs in with email and password.
	Login(ctx context.Context, req models.LoginRequest) (models.UserResponse, error)

	// Logout revokes the current session and forgets the stored credentials.
	// It succeeds even when no session is held.
	Logout(ctx context.Context) error

	// StartDemo signs in as a fresh demo user.
	StartDemo(ctx context.Context) (models.UserResponse, error)

	// Me returns the user behind the current credentials.
	Me(ctx context.Context) (models.UserResponse, error)

	// Session describes the identity the server resolved for this client.
	Session(ctx context.Context) (models.SessionResponse, error)

	// Version returns the server's application version.
	Version(ctx context.Context) (string, error)

	// Token returns the stored bearer token, or "" before any sign-in.
	Token() string
}
