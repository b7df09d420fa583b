package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-med-tracker/internal/app"
	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/service"
	"github.com/MKhiriev/go-med-tracker/internal/store"
	"github.com/MKhiriev/go-med-tracker/internal/utils"
	"github.com/MKhiriev/go-med-tracker/internal/validators"
	"github.com/MKhiriev/go-med-tracker/models"
)

// Machine-readable error codes carried in [models.ErrorResponse].
const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountLocked      = "ACCOUNT_LOCKED"
	CodeEmailInUse         = "EMAIL_IN_USE"
	CodeDuplicateInFlight  = "DUPLICATE_IN_FLIGHT"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInternal           = "INTERNAL_ERROR"
)

// retryAfterSeconds is advertised for duplicate in-flight submissions.
const retryAfterSeconds = "1"

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorStatusMap is checked in order; the first errors.Is match wins.
var errorStatusMap = []errorMapping{
	{ErrInvalidJSON, http.StatusBadRequest, CodeValidationFailed, app.MsgInvalidJSON},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, CodeValidationFailed, app.MsgInvalidDataProvided},
	{service.ErrAccountLocked, http.StatusLocked, CodeAccountLocked, app.MsgAccountLocked},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials, app.MsgInvalidCredentials},
	{service.ErrEmailInUse, http.StatusConflict, CodeEmailInUse, app.MsgEmailInUse},
	{store.ErrEmailAlreadyExists, http.StatusConflict, CodeEmailInUse, app.MsgEmailInUse},
	{service.ErrDuplicateInFlight, http.StatusTooManyRequests, CodeDuplicateInFlight, app.MsgDuplicateInFlight},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, CodeUnauthenticated, app.MsgUnauthenticated},
	{ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated, app.MsgUnauthenticated},
	{store.ErrUserNotFound, http.StatusUnauthorized, CodeUnauthenticated, app.MsgUnauthenticated},
}

var internalErrorMapping = errorMapping{
	status:  http.StatusInternalServerError,
	code:    CodeInternal,
	message: app.MsgInternalServerError,
}

func mappingFromError(err error) errorMapping {
	for _, m := range errorStatusMap {
		if errors.Is(err, m.target) {
			return m
		}
	}
	return internalErrorMapping
}

func statusFromError(err error) int {
	return mappingFromError(err).status
}

// errorResponse translates err into the status and body sent to the client.
// Internal details never reach the body.
func errorResponse(err error) (int, models.ErrorResponse) {
	m := mappingFromError(err)
	resp := models.ErrorResponse{Code: m.code, Message: m.message}

	var fieldErr *validators.FieldError
	if m.code == CodeValidationFailed && errors.As(err, &fieldErr) {
		resp.Field = fieldErr.Field
		resp.Message = fieldErr.Err.Error()
	}

	var lockedErr *service.AccountLockedError
	if errors.As(err, &lockedErr) {
		until := lockedErr.Until.UTC()
		resp.LockExpiresAt = &until
	}

	return m.status, resp
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, resp := errorResponse(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "*Handler.writeError").Msg("request failed")
	} else {
		log.Debug().Err(err).Str("code", resp.Code).Msg("request rejected")
	}

	if status == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}

	utils.WriteJSON(w, resp, status)
}
