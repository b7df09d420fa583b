// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/audit"
	"github.com/MKhiriev/go-med-tracker/internal/config"
	"github.com/MKhiriev/go-med-tracker/internal/crypto"
	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/store"
	"github.com/MKhiriev/go-med-tracker/internal/utils"
	"github.com/MKhiriev/go-med-tracker/models"
)

const (
	demoEmailDomain = "demo.invalid"
	demoDisplayName = "Demo user"
)

// Audit field values for failure reasons.
const (
	reasonUnknownEmail = "unknown_email"
	reasonInactive     = "inactive"
	reasonBadPassword  = "bad_password"
	reasonLocked       = "locked"
	reasonDuplicate    = "duplicate_in_flight"
	reasonEmailInUse   = "email_in_use"
	reasonInternal     = "internal"
)

// authService is the concrete implementation of AuthService.
//
// Register, login and demo start each run in a single database transaction.
// Login reads the user row FOR UPDATE so concurrent failures for one account
// are serialized by PostgreSQL, and the lockout transition is derived from
// that freshly read row.
type authService struct {
	users      store.UserRepository
	transactor store.Transactor
	sessions   SessionService
	hasher     crypto.PasswordHasher
	lockout    *LockoutPolicy
	guard      *inflightGuard
	recorder   audit.Recorder
	ids        utils.IDGenerator
	clock      utils.Clock

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService over the given storages and
// session service. recorder is wrapped with audit.Safe so a failing sink can
// never fail a request.
//
// The returned service is safe for concurrent use.
func NewAuthService(
	storages *store.Storages,
	sessions SessionService,
	hasher crypto.PasswordHasher,
	recorder audit.Recorder,
	cfg *config.StructuredConfig,
	clock utils.Clock,
	logger *logger.Logger,
) AuthService {
	return &authService{
		users:         storages.UserRepository,
		transactor:    storages.Transactor,
		sessions:      sessions,
		hasher:        hasher,
		lockout:       NewLockoutPolicy(cfg.Auth, clock),
		guard:         newInflightGuard(),
		recorder:      audit.Safe(recorder),
		ids:           utils.NewUUIDGenerator(),
		clock:         clock,
		tokenSignKey:  cfg.App.TokenSignKey,
		tokenIssuer:   cfg.App.TokenIssuer,
		tokenDuration: cfg.App.TokenDuration,
		logger:        logger,
	}
}

// Register creates an active account and logs it in.
//
// Returns ErrEmailInUse when the normalized email is taken (checked up front
// and again through the unique index) and ErrDuplicateInFlight when the
// same email is already being registered.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)
	email := models.NormalizeEmail(req.Email)

	release, ok := a.guard.TryAcquire("register:" + email)
	if !ok {
		a.record(ctx, audit.NewEvent(audit.RegisterFailure).With("email", email).With("reason", reasonDuplicate))
		return models.AuthResult{}, ErrDuplicateInFlight
	}
	defer release()

	var result models.AuthResult
	err := a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := a.users.FindUserByEmail(ctx, email)
		switch {
		case err == nil:
			return ErrEmailInUse
		case !errors.Is(err, store.ErrUserNotFound):
			return fmt.Errorf("user lookup failed: %w", err)
		}

		hash, err := a.hasher.Hash(req.Password)
		if err != nil {
			return fmt.Errorf("password hashing failed: %w", err)
		}

		now := a.clock.Now()
		user, err := a.users.CreateUser(ctx, models.User{
			UserID:       a.ids.Generate(),
			Email:        email,
			DisplayName:  strings.TrimSpace(req.DisplayName),
			PasswordHash: hash,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return ErrEmailInUse
		}
		if err != nil {
			return fmt.Errorf("user creation ended with error: %w", err)
		}

		result, err = a.startSession(ctx, user, false)
		return err
	})
	if err != nil {
		reason := reasonInternal
		if errors.Is(err, ErrEmailInUse) {
			reason = reasonEmailInUse
		} else {
			log.Err(err).Str("func", "*authService.Register").Msg("registration failed")
		}
		a.record(ctx, audit.NewEvent(audit.RegisterFailure).With("email", email).With("reason", reason))
		return models.AuthResult{}, err
	}

	a.record(ctx, audit.NewEvent(audit.RegisterSuccess).
		With("user_id", result.User.UserID).
		With("session_id", result.Session.SessionID))

	return result, nil
}

// Login authenticates by email and password.
//
// Unknown emails, inactive accounts and wrong passwords all yield
// ErrInvalidCredentials, including the failure that locks the account.
// A locked account yields *AccountLockedError without checking the password.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)
	email := models.NormalizeEmail(req.Email)

	release, ok := a.guard.TryAcquire("login:" + email)
	if !ok {
		a.record(ctx, audit.NewEvent(audit.LoginFailure).With("email", email).With("reason", reasonDuplicate))
		return models.AuthResult{}, ErrDuplicateInFlight
	}
	defer release()

	var (
		result models.AuthResult
		// outcome is a rejection decided inside the transaction whose state
		// changes must still be committed.
		outcome    error
		reason     string
		justLocked bool
		failed     models.User
	)

	err := a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := a.users.FindUserByEmailForUpdate(ctx, email)
		if errors.Is(err, store.ErrUserNotFound) {
			outcome, reason = ErrInvalidCredentials, reasonUnknownEmail
			return nil
		}
		if err != nil {
			return fmt.Errorf("user search by email failed: %w", err)
		}

		if !user.Active {
			outcome, reason = ErrInvalidCredentials, reasonInactive
			return nil
		}

		if a.lockout.IsLocked(user) {
			outcome, reason = &AccountLockedError{Until: *user.LockUntil}, reasonLocked
			failed = user
			return nil
		}

		if !a.hasher.Verify(req.Password, user.PasswordHash) {
			failed, justLocked = a.lockout.RegisterFailure(user)
			if err = a.users.UpdateLockoutState(ctx, failed); err != nil {
				return fmt.Errorf("lockout state update failed: %w", err)
			}
			outcome, reason = ErrInvalidCredentials, reasonBadPassword
			return nil
		}

		user = a.lockout.RegisterSuccess(user)
		if err = a.users.UpdateLockoutState(ctx, user); err != nil {
			return fmt.Errorf("lockout state update failed: %w", err)
		}

		result, err = a.startSession(ctx, user, false)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("login failed")
		a.record(ctx, audit.NewEvent(audit.LoginFailure).With("email", email).With("reason", reasonInternal))
		return models.AuthResult{}, err
	}

	if outcome != nil {
		a.recordLoginRejection(ctx, email, reason, failed, justLocked)
		return models.AuthResult{}, outcome
	}

	a.record(ctx, audit.NewEvent(audit.LoginSuccess).
		With("user_id", result.User.UserID).
		With("session_id", result.Session.SessionID))

	return result, nil
}

func (a *authService) recordLoginRejection(ctx context.Context, email, reason string, user models.User, justLocked bool) {
	if reason == reasonLocked {
		a.record(ctx, audit.NewEvent(audit.LoginLocked).
			With("user_id", user.UserID).
			With("lock_until", *user.LockUntil))
		return
	}

	event := audit.NewEvent(audit.LoginFailure).With("email", email).With("reason", reason)
	if user.UserID != "" {
		event = event.With("user_id", user.UserID).With("failed_attempts", user.FailedAttempts)
	}
	a.record(ctx, event)

	if justLocked {
		a.record(ctx, audit.NewEvent(audit.AccountLocked).
			With("user_id", user.UserID).
			With("lock_until", *user.LockUntil))
	}
}

// Logout revokes sessionID. An empty or unknown id is a successful no-op so
// the transport can always clear the cookie.
func (a *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	session, err := a.sessions.Get(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err = a.sessions.Revoke(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Msg("session revoke failed")
		return err
	}

	a.record(ctx, audit.NewEvent(audit.Logout).
		With("user_id", session.UserID).
		With("session_id", session.SessionID))

	return nil
}

// StartDemo creates a synthetic demo user that can never log in with a
// password and opens a demo session for it.
func (a *authService) StartDemo(ctx context.Context) (models.AuthResult, error) {
	var result models.AuthResult
	err := a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		id := a.ids.Generate()
		now := a.clock.Now()

		user, err := a.users.CreateUser(ctx, models.User{
			UserID:      id,
			Email:       fmt.Sprintf("demo-%s@%s", id, demoEmailDomain),
			DisplayName: demoDisplayName,
			Active:      true,
			Demo:        true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("demo user creation failed: %w", err)
		}

		result, err = a.startSession(ctx, user, true)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.StartDemo").Msg("demo start failed")
		return models.AuthResult{}, err
	}

	a.record(ctx, audit.NewEvent(audit.DemoStarted).
		With("user_id", result.User.UserID).
		With("session_id", result.Session.SessionID))

	return result, nil
}

// CurrentUser returns the account behind userID.
func (a *authService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.clock.Now(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, wrong algorithm, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.clock.Now())
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// startSession opens a session and issues a bearer token for user. It runs
// inside the caller's transaction so a failure undoes the whole unit.
func (a *authService) startSession(ctx context.Context, user models.User, demo bool) (models.AuthResult, error) {
	session, err := a.sessions.Create(ctx, user.UserID, demo)
	if err != nil {
		return models.AuthResult{}, err
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.AuthResult{}, err
	}

	return models.AuthResult{User: user, Session: session, Token: token}, nil
}

func (a *authService) record(ctx context.Context, event audit.Event) {
	a.recorder.Record(ctx, event)
}
