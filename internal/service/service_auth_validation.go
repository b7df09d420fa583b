package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-med-tracker/internal/validators"
	"github.com/MKhiriev/go-med-tracker/models"
)

// AuthValidationService rejects malformed register and login payloads before
// they reach the wrapped AuthService. Every other call is passed through.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewCredentialsValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Register(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) Logout(ctx context.Context, sessionID string) error {
	return v.inner.Logout(ctx, sessionID)
}

func (v *AuthValidationService) StartDemo(ctx context.Context) (models.AuthResult, error) {
	return v.inner.StartDemo(ctx)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	return v.inner.CurrentUser(ctx, userID)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}
