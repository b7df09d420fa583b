// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/models"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewDB(conn, logger.Nop()), mock
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows(userColumns)
	for _, u := range users {
		var lockUntil any
		if u.LockUntil != nil {
			lockUntil = *u.LockUntil
		}
		rows.AddRow(u.UserID, u.Email, u.DisplayName, u.PasswordHash, u.Active, u.Demo, u.FailedAttempts, lockUntil, u.CreatedAt, u.UpdatedAt)
	}
	return rows
}

func sampleUser() models.User {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return models.User{
		UserID:       "0195f3a2-0000-7000-8000-000000000001",
		Email:        "john@example.com",
		DisplayName:  "John",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := sampleUser()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.UserID, user.Email, user.DisplayName, user.PasswordHash, true, false, 0, user.CreatedAt, user.UpdatedAt).
		WillReturnRows(userRows(user))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != user.UserID || created.Email != user.Email {
		t.Errorf("unexpected user returned: %+v", created)
	}
	if created.LockUntil != nil {
		t.Errorf("expected nil LockUntil, got %v", created.LockUntil)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), sampleUser())
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), sampleUser())
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	rows := sqlmock.
		NewRows([]string{"user_id"}). // intentionally wrong shape → scan error
		AddRow("u-1")

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(rows)

	_, err := repo.CreateUser(context.Background(), sampleUser())
	if err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := sampleUser()

	mock.ExpectQuery("SELECT user_id, email").
		WithArgs("john@example.com").
		WillReturnRows(userRows(user))

	found, err := repo.FindUserByEmail(context.Background(), "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Email != "john@example.com" {
		t.Errorf("expected email john@example.com, got %s", found.Email)
	}
}

func TestFindUserByEmailForUpdate_LocksRow(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := sampleUser()
	until := user.CreatedAt.Add(15 * time.Minute)
	user.FailedAttempts = 5
	user.LockUntil = &until

	mock.ExpectQuery("SELECT user_id, .* FROM users WHERE email = \\$1 FOR UPDATE").
		WithArgs("john@example.com").
		WillReturnRows(userRows(user))

	found, err := repo.FindUserByEmailForUpdate(context.Background(), "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.LockUntil == nil || !found.LockUntil.Equal(until) {
		t.Errorf("expected LockUntil %v, got %v", until, found.LockUntil)
	}
	if found.FailedAttempts != 5 {
		t.Errorf("expected 5 failed attempts, got %d", found.FailedAttempts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users WHERE user_id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(context.Background(), "missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByEmail_NoRows(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByEmail_UnexpectedError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByEmail(context.Background(), "john@example.com")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestUpdateLockoutState(t *testing.T) {
	until := time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC)
	user := sampleUser()
	user.FailedAttempts = 5
	user.LockUntil = &until

	tests := []struct {
		name    string
		result  func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "updated",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE users SET failed_attempts").
					WithArgs(5, sqlmock.AnyArg(), user.UpdatedAt, user.UserID).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no such user",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "db error",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE users").WillReturnError(errors.New("boom"))
			},
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)
			tt.result(mock)

			err := repo.UpdateLockoutState(context.Background(), user)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
