// Package storetest provides in-memory implementations of the store ports
// for tests that exercise services and handlers without PostgreSQL.
package storetest

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/store"
	"github.com/MKhiriev/go-med-tracker/models"
)

var (
	_ store.Transactor        = (*Transactor)(nil)
	_ store.UserRepository    = (*UserRepository)(nil)
	_ store.SessionRepository = (*SessionRepository)(nil)
)

// Transactor runs fn directly without a database and counts outcomes.
// State written by a failed unit of work is not undone.
type Transactor struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (f *Transactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	err := fn(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// UserRepository is an in-memory store.UserRepository safe for concurrent use.
type UserRepository struct {
	mu      sync.Mutex
	byID    map[string]models.User
	byEmail map[string]string
}

// NewUserRepository returns a repository seeded with users.
func NewUserRepository(users ...models.User) *UserRepository {
	repo := &UserRepository{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
	for _, u := range users {
		repo.byID[u.UserID] = u
		repo.byEmail[u.Email] = u.UserID
	}
	return repo
}

func (r *UserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return models.User{}, store.ErrEmailAlreadyExists
	}
	r.byID[user.UserID] = user
	r.byEmail[user.Email] = user.UserID
	return user, nil
}

func (r *UserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *UserRepository) FindUserByEmailForUpdate(ctx context.Context, email string) (models.User, error) {
	return r.FindUserByEmail(ctx, email)
}

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) UpdateLockoutState(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[user.UserID]
	if !ok {
		return store.ErrUserNotFound
	}
	stored.FailedAttempts = user.FailedAttempts
	stored.LockUntil = user.LockUntil
	stored.UpdatedAt = user.UpdatedAt
	r.byID[user.UserID] = stored
	return nil
}

// User returns the stored user with userID.
func (r *UserRepository) User(userID string) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[userID]
}

// SessionRepository is an in-memory store.SessionRepository safe for concurrent use.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]models.Session)}
}

func (r *SessionRepository) CreateSession(_ context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.SessionID] = session
	return nil
}

func (r *SessionRepository) GetSession(_ context.Context, sessionID string) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return models.Session{}, store.ErrSessionNotFound
	}
	return s, nil
}

func (r *SessionRepository) TouchSession(_ context.Context, sessionID string, lastActivity, expiresAt time.Time) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return models.Session{}, store.ErrSessionNotFound
	}
	s.LastActivityAt = lastActivity
	s.ExpiresAt = expiresAt
	r.sessions[sessionID] = s
	return s, nil
}

func (r *SessionRepository) RevokeSession(_ context.Context, sessionID string, now time.Time) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return models.Session{}, store.ErrSessionNotFound
	}
	if s.RevokedAt == nil {
		s.RevokedAt = &now
	}
	r.sessions[sessionID] = s
	return s, nil
}

func (r *SessionRepository) DeleteStaleSessions(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, s := range r.sessions {
		if (s.RevokedAt != nil && s.RevokedAt.Before(before)) || s.ExpiresAt.Before(before) {
			delete(r.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

// Commits returns the number of units of work that succeeded.
func (f *Transactor) Commits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commits
}

// Rollbacks returns the number of units of work that failed.
func (f *Transactor) Rollbacks() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rollbacks
}

// Session returns the stored session and whether it exists.
func (r *SessionRepository) Session(sessionID string) (models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	return s, ok
}

// Len returns the number of stored sessions.
func (r *SessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Memory bundles in-memory repositories behind a store.Storages.
type Memory struct {
	Storages   *store.Storages
	Users      *UserRepository
	Sessions   *SessionRepository
	Transactor *Transactor
}

// NewMemory returns empty in-memory storages.
func NewMemory() *Memory {
	m := &Memory{
		Users:      NewUserRepository(),
		Sessions:   NewSessionRepository(),
		Transactor: &Transactor{},
	}
	m.Storages = &store.Storages{
		UserRepository:    m.Users,
		SessionRepository: m.Sessions,
		Transactor:        m.Transactor,
	}
	return m
}
