package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/utils"
	"github.com/MKhiriev/go-med-tracker/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", result.User.UserID).Msg("user registered")
	h.writeAuthResult(w, result, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", result.User.UserID).Msg("user successfully logged in")
	h.writeAuthResult(w, result, http.StatusOK)
}

// logout always succeeds and always clears the cookie, even when the session
// is unknown or the revoke fails.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if sessionID, ok := h.sessionIDFromCookie(r); ok {
		if err := h.services.AuthService.Logout(r.Context(), sessionID); err != nil {
			log.Err(err).Str("func", "*Handler.logout").Msg("session revoke failed")
		}
	}

	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.LogoutResponse{Success: true}, http.StatusOK)
}

func (h *Handler) demo(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.AuthService.StartDemo(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeAuthResult(w, result, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity := utils.IdentityFromContext(r.Context())

	user, err := h.services.AuthService.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewUserResponse(user), http.StatusOK)
}

// session describes the identity behind the request. Bearer-only requests
// carry no session id or expiry.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	identity := utils.IdentityFromContext(r.Context())

	resp := models.SessionResponse{
		UserID:    identity.UserID,
		SessionID: identity.SessionID,
		Demo:      identity.Demo,
	}

	if identity.SessionID != "" {
		session, err := h.services.SessionService.Get(r.Context(), identity.SessionID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		expiresAt := session.ExpiresAt.UTC()
		resp.ExpiresAt = &expiresAt
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// writeAuthResult hands the new session to the client as a cookie and the
// bearer token as a response header.
func (h *Handler) writeAuthResult(w http.ResponseWriter, result models.AuthResult, status int) {
	h.setSessionCookie(w, result.Session.SessionID)
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", result.Token.SignedString))
	utils.WriteJSON(w, models.NewUserResponse(result.User), status)
}
