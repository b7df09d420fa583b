package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/service"
	"github.com/MKhiriev/go-med-tracker/internal/store"
	"github.com/MKhiriev/go-med-tracker/internal/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_StatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid json", fmt.Errorf("%w: eof", ErrInvalidJSON), http.StatusBadRequest, CodeValidationFailed},
		{"validation", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrInvalidEmail), http.StatusBadRequest, CodeValidationFailed},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{"locked sentinel", service.ErrAccountLocked, http.StatusLocked, CodeAccountLocked},
		{"locked typed", &service.AccountLockedError{Until: testNow}, http.StatusLocked, CodeAccountLocked},
		{"email in use", service.ErrEmailInUse, http.StatusConflict, CodeEmailInUse},
		{"unique violation", fmt.Errorf("wrapped: %w", store.ErrEmailAlreadyExists), http.StatusConflict, CodeEmailInUse},
		{"duplicate", service.ErrDuplicateInFlight, http.StatusTooManyRequests, CodeDuplicateInFlight},
		{"token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, CodeUnauthenticated},
		{"anonymous", ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated},
		{"user gone", store.ErrUserNotFound, http.StatusUnauthorized, CodeUnauthenticated},
		{"query", store.ErrExecutingQuery, http.StatusInternalServerError, CodeInternal},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := errorResponse(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus, statusFromError(tt.err))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestErrorResponse_FieldFromValidation(t *testing.T) {
	err := fmt.Errorf("%w: %w", service.ErrInvalidDataProvided,
		&validators.FieldError{Field: validators.FieldEmail, Err: validators.ErrInvalidEmail})

	_, resp := errorResponse(err)

	assert.Equal(t, validators.FieldEmail, resp.Field)
	assert.Equal(t, validators.ErrInvalidEmail.Error(), resp.Message)
}

func TestErrorResponse_LockExpiry(t *testing.T) {
	until := time.Date(2026, time.March, 1, 12, 15, 0, 0, time.FixedZone("X", 3600))

	_, resp := errorResponse(&service.AccountLockedError{Until: until})

	require.NotNil(t, resp.LockExpiresAt)
	assert.True(t, until.Equal(*resp.LockExpiresAt))
	assert.Equal(t, time.UTC, resp.LockExpiresAt.Location())
}

func TestErrorResponse_InternalDetailsHidden(t *testing.T) {
	_, resp := errorResponse(fmt.Errorf("pq: relation users does not exist"))

	assert.NotContains(t, resp.Message, "relation")
}

func TestWriteError_RetryAfterOnlyForDuplicates(t *testing.T) {
	h, _ := newMockedHandler(t)

	rr := httptest.NewRecorder()
	h.writeError(rr, httptest.NewRequest(http.MethodPost, "/", nil), service.ErrDuplicateInFlight)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	rr = httptest.NewRecorder()
	h.writeError(rr, httptest.NewRequest(http.MethodPost, "/", nil), service.ErrInvalidCredentials)
	assert.Empty(t, rr.Header().Get("Retry-After"))
}
