// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, clocks,
// identifier generation, HTTP response writing, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-med-tracker/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey is the key used to store the resolved user identifier
	// (string) in the request context.
	UserIDCtxKey = contextKey("userID")

	// SessionIDCtxKey is the key used to store the identifier of the live
	// session that authenticated the request, if any.
	SessionIDCtxKey = contextKey("sessionID")

	// DemoCtxKey marks requests authenticated by a demo session.
	DemoCtxKey = contextKey("demo")
)

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID and an ok flag:
//   - ok == true  — value is found, has the correct type and is non-empty
//   - ok == false — value is missing, empty or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// GetSessionIDFromContext retrieves the session identifier from the context.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok && sessionID != ""
}

// WithIdentity returns a copy of ctx carrying the resolved identity.
// An anonymous identity leaves ctx untouched.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	if identity.IsAnonymous() {
		return ctx
	}

	ctx = context.WithValue(ctx, UserIDCtxKey, identity.UserID)
	if identity.SessionID != "" {
		ctx = context.WithValue(ctx, SessionIDCtxKey, identity.SessionID)
	}
	if identity.Demo {
		ctx = context.WithValue(ctx, DemoCtxKey, true)
	}

	return ctx
}

// IdentityFromContext collects everything the identity resolver published.
func IdentityFromContext(ctx context.Context) models.Identity {
	userID, _ := GetUserIDFromContext(ctx)
	sessionID, _ := GetSessionIDFromContext(ctx)
	demo, _ := ctx.Value(DemoCtxKey).(bool)

	return models.Identity{
		UserID:    userID,
		SessionID: sessionID,
		Demo:      demo,
	}
}
