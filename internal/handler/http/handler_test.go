package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/audit"
	"github.com/MKhiriev/go-med-tracker/internal/config"
	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/mock"
	"github.com/MKhiriev/go-med-tracker/internal/service"
	"github.com/MKhiriev/go-med-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testCookieName = "medtrack_session"

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		Auth:   config.Auth{IdleTimeout: 30 * time.Minute},
		Cookie: config.Cookie{Name: testCookieName},
		Server: config.Server{RequestTimeout: 5 * time.Second},
	}
}

type mockedServices struct {
	auth     *mock.MockAuthService
	sessions *mock.MockSessionService
	appInfo  *mock.MockAppInfoService
	recorder *audit.Counter
}

// newMockedHandler builds a Handler over gomock services.
func newMockedHandler(t *testing.T) (*Handler, *mockedServices) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &mockedServices{
		auth:     mock.NewMockAuthService(ctrl),
		sessions: mock.NewMockSessionService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
		recorder: audit.NewCounter(),
	}

	svcs := &service.Services{
		AuthService:    m.auth,
		SessionService: m.sessions,
		AppInfoService: m.appInfo,
		Recorder:       m.recorder,
	}

	return NewHandler(svcs, testConfig(), logger.Nop()), m
}

// findCookie returns the last Set-Cookie entry named name.
func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

func countCookies(rr *httptest.ResponseRecorder, name string) int {
	n := 0
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			n++
		}
	}
	return n
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp
}

func liveSession(id, userID string) models.Session {
	return models.Session{
		SessionID:      id,
		UserID:         userID,
		CreatedAt:      testNow,
		LastActivityAt: testNow,
		ExpiresAt:      testNow.Add(30 * time.Minute),
	}
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svc, testConfig(), log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, log, h.logger)
	assert.Equal(t, testCookieName, h.cookie.Name)
	assert.Equal(t, 30*time.Minute, h.idleTimeout)
	assert.Equal(t, 5*time.Second, h.requestTimeout)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, testConfig(), logger.Nop())
	h2 := NewHandler(&service.Services{}, testConfig(), logger.Nop())

	assert.NotSame(t, h1, h2)
}
