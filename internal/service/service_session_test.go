package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/mock"
	"github.com/MKhiriev/go-med-tracker/internal/store"
	"github.com/MKhiriev/go-med-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSessionService(t *testing.T) (SessionService, *mock.MockSessionRepository, *fakeClock) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	clock := newFakeClock(testEpoch)

	return NewSessionService(repo, testConfig().Auth, clock, logger.Nop()), repo, clock
}

func TestSessionService_Create_SetsIdleWindow(t *testing.T) {
	svc, repo, _ := newTestSessionService(t)

	var stored models.Session
	repo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s models.Session) error {
			stored = s
			return nil
		})

	session, err := svc.Create(context.Background(), "user-1", true)

	require.NoError(t, err)
	assert.Equal(t, stored, session)
	assert.Len(t, session.SessionID, 27, "KSUID string length")
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, testEpoch, session.CreatedAt)
	assert.Equal(t, testEpoch, session.LastActivityAt)
	assert.Equal(t, testEpoch.Add(30*time.Minute), session.ExpiresAt)
	assert.True(t, session.Demo)
	assert.Nil(t, session.RevokedAt)
}

func TestSessionService_Create_UniqueIDs(t *testing.T) {
	svc, repo, _ := newTestSessionService(t)
	repo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil).Times(100)

	seen := make(map[string]struct{})
	for range 100 {
		s, err := svc.Create(context.Background(), "user-1", false)
		require.NoError(t, err)
		seen[s.SessionID] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestSessionService_Create_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestSessionService(t)
	repoErr := errors.New("boom")
	repo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(repoErr)

	_, err := svc.Create(context.Background(), "user-1", false)

	assert.ErrorIs(t, err, repoErr)
}

func TestSessionService_Get_NotFound(t *testing.T) {
	svc, repo, _ := newTestSessionService(t)
	repo.EXPECT().GetSession(gomock.Any(), "missing").Return(models.Session{}, store.ErrSessionNotFound)

	_, err := svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSessionService_Touch_ExtendsFromNow(t *testing.T) {
	svc, repo, clock := newTestSessionService(t)
	clock.Advance(10 * time.Minute)
	now := clock.Now()

	repo.EXPECT().TouchSession(gomock.Any(), "s1", now, now.Add(30*time.Minute)).
		Return(models.Session{SessionID: "s1", LastActivityAt: now, ExpiresAt: now.Add(30 * time.Minute)}, nil)

	touched, err := svc.Touch(context.Background(), models.Session{SessionID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, now.Add(30*time.Minute), touched.ExpiresAt)
}

func TestSessionService_Revoke_PassesNow(t *testing.T) {
	svc, repo, clock := newTestSessionService(t)
	now := clock.Now()

	repo.EXPECT().RevokeSession(gomock.Any(), "s1", now).
		Return(models.Session{SessionID: "s1", RevokedAt: &now}, nil)

	revoked, err := svc.Revoke(context.Background(), models.Session{SessionID: "s1"})

	require.NoError(t, err)
	assert.True(t, revoked.IsRevoked())
}

func TestSessionService_Cleanup_SubtractsGrace(t *testing.T) {
	svc, repo, _ := newTestSessionService(t)
	cutoff := testEpoch.Add(time.Hour)

	repo.EXPECT().DeleteStaleSessions(gomock.Any(), cutoff.Add(-10*time.Minute)).Return(int64(3), nil)

	deleted, err := svc.Cleanup(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestSessionService_Cleanup_Error(t *testing.T) {
	svc, repo, _ := newTestSessionService(t)
	repo.EXPECT().DeleteStaleSessions(gomock.Any(), gomock.Any()).Return(int64(0), store.ErrExecutingQuery)

	_, err := svc.Cleanup(context.Background(), testEpoch)

	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

func TestSessionService_IsLive(t *testing.T) {
	svc, _, _ := newTestSessionService(t)
	revokedAt := testEpoch

	tests := []struct {
		name    string
		session models.Session
		want    bool
	}{
		{"fresh", models.Session{ExpiresAt: testEpoch.Add(time.Minute)}, true},
		{"expires now", models.Session{ExpiresAt: testEpoch}, true},
		{"expired", models.Session{ExpiresAt: testEpoch.Add(-time.Nanosecond)}, false},
		{"revoked", models.Session{ExpiresAt: testEpoch.Add(time.Minute), RevokedAt: &revokedAt}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.IsLive(tt.session))
		})
	}
}
