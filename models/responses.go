package models

import "time"

// ErrorResponse is the JSON body returned for every failed auth request.
// Code is a stable machine-readable identifier (e.g. INVALID_CREDENTIALS).
type ErrorResponse struct {
	Code    string `json:"error"`
	Message string `json:"message,omitempty"`

	// Field names the offending input field of a validation failure.
	Field string `json:"field,omitempty"`

	// LockExpiresAt is set only for ACCOUNT_LOCKED responses.
	LockExpiresAt *time.Time `json:"lock_expires_at,omitempty"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Demo        bool      `json:"demo"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserResponse builds the public representation of u.
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Demo:        u.Demo,
		CreatedAt:   u.CreatedAt,
	}
}

// SessionResponse describes the identity resolved for the current request.
type SessionResponse struct {
	UserID    string     `json:"user_id"`
	SessionID string     `json:"session_id,omitempty"`
	Demo      bool       `json:"demo"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// LogoutResponse is returned by POST /auth/logout.
type LogoutResponse struct {
	Success bool `json:"success"`
}
