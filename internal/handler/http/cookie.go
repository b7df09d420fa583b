package http

import (
	"net/http"
	"strings"
)

// setSessionCookie issues the session cookie for sessionID. Its Max-Age
// follows the idle window so the browser drops it together with the session.
func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	h.replaceCookie(w, h.sessionCookie(sessionID, int(h.idleTimeout.Seconds())))
}

// clearSessionCookie overwrites the session cookie with an expired one.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	h.replaceCookie(w, h.sessionCookie("", -1))
}

// replaceCookie drops any session cookie already queued on w, so a handler
// can supersede the one re-issued by the identity resolver.
func (h *Handler) replaceCookie(w http.ResponseWriter, cookie *http.Cookie) {
	prefix := cookie.Name + "="
	queued := w.Header().Values("Set-Cookie")
	w.Header().Del("Set-Cookie")
	for _, v := range queued {
		if !strings.HasPrefix(v, prefix) {
			w.Header().Add("Set-Cookie", v)
		}
	}

	http.SetCookie(w, cookie)
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.cookie.Strict {
		sameSite = http.SameSiteStrictMode
	}

	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: sameSite,
	}
}

// sessionIDFromCookie returns the raw session id carried by r, if any.
func (h *Handler) sessionIDFromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(h.cookie.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}
