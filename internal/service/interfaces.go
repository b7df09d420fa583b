package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-med-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService orchestrates registration, login, logout and demo sessions.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	// Logout revokes the session. Unknown or empty ids are not an error.
	Logout(ctx context.Context, sessionID string) error
	StartDemo(ctx context.Context) (models.AuthResult, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	CurrentUser(ctx context.Context, userID string) (models.User, error)
}

// SessionService manages session lifetime over a rolling idle window.
type SessionService interface {
	Create(ctx context.Context, userID string, demo bool) (models.Session, error)
	// Get returns the stored session without liveness filtering.
	Get(ctx context.Context, sessionID string) (models.Session, error)
	// Touch extends the session to now plus the idle window.
	Touch(ctx context.Context, session models.Session) (models.Session, error)
	// Revoke marks the session revoked. Repeated calls keep the first time.
	Revoke(ctx context.Context, session models.Session) (models.Session, error)
	// Cleanup deletes sessions revoked or expired longer than the grace
	// period before cutoff.
	Cleanup(ctx context.Context, cutoff time.Time) (int64, error)
	IsLive(session models.Session) bool
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
