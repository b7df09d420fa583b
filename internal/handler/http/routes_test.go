package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-med-tracker/internal/service"
	"github.com/MKhiriev/go-med-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func validAuthHeader() string { return "Bearer stub-token" }

// ---- Public routes: reachable without auth ----

func TestInit_PublicRoutes(t *testing.T) {
	h, m := newMockedHandler(t)
	m.auth.EXPECT().StartDemo(gomock.Any()).Return(models.AuthResult{}, nil).AnyTimes()
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("test-version").AnyTimes()
	router := h.Init()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/auth/register", "not json"},
		{http.MethodPost, "/auth/login", "not json"},
		{http.MethodPost, "/auth/logout", ""},
		{http.MethodPost, "/auth/demo", ""},
		{http.MethodGet, "/api/version", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.NotEqual(t, http.StatusNotFound, rr.Code, "route should be registered: %s %s", tt.method, tt.path)
			assert.NotEqual(t, http.StatusUnauthorized, rr.Code, "route must not require auth: %s %s", tt.method, tt.path)
		})
	}
}

// ---- Protected routes: 401 without identity ----

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	h, _ := newMockedHandler(t)
	router := h.Init()

	for _, path := range []string{"/auth/me", "/auth/session"} {
		t.Run(path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, CodeUnauthenticated, decodeError(t, rr).Code)
		})
	}
}

func TestInit_ProtectedRoutes_InvalidBearerIsAnonymous(t *testing.T) {
	h, m := newMockedHandler(t)
	m.auth.EXPECT().ParseToken(gomock.Any(), "stub-token").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestInit_ProtectedRoutes_PassWithValidToken(t *testing.T) {
	h, m := newMockedHandler(t)
	m.auth.EXPECT().ParseToken(gomock.Any(), "stub-token").Return(models.Token{UserID: "u1"}, nil)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"user_id":"u1","demo":false}`, rr.Body.String())
}

// ---- Unknown routes and methods ----

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	h, _ := newMockedHandler(t)
	router := h.Init()

	for _, path := range []string{"/", "/auth", "/auth/unknown", "/api/user/login", "/api/version/extra"} {
		t.Run(path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestInit_WrongMethod_Returns404NotMethodNotAllowed(t *testing.T) {
	h, _ := newMockedHandler(t)
	router := h.Init()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/login"},
		{http.MethodGet, "/auth/register"},
		{http.MethodDelete, "/auth/logout"},
		{http.MethodPost, "/auth/me"},
		{http.MethodPost, "/api/version"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

// ---- Middleware chain ----

func TestInit_TraceIDHeader_AlwaysSet(t *testing.T) {
	h, _ := newMockedHandler(t)
	router := h.Init()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestInit_TraceIDHeader_EchoedFromRequest(t *testing.T) {
	h, _ := newMockedHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "trace-123", rr.Header().Get(traceIDHeader))
}

func TestInit_GzipResponse(t *testing.T) {
	h, m := newMockedHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0")
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}
