// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// LoginRequest is the payload of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is what a successful register, login or demo start produces:
// the authenticated user, the freshly minted session and a bearer token.
type AuthResult struct {
	User    User
	Session Session
	Token   Token
}

// Identity is the request identity published by the identity resolver.
// An empty UserID means the request is anonymous.
type Identity struct {
	UserID    string
	SessionID string
	Demo      bool
}

// IsAnonymous reports whether no user was resolved for the request.
func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}
