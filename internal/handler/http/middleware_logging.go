package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/utils"
)

// withLogging writes one access-log line per request. It runs after
// withIdentity so the line carries the resolved user and session; session
// ids are never logged in full.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		event := log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size)

		if identity := utils.IdentityFromContext(r.Context()); !identity.IsAnonymous() {
			event = event.Str("user_id", identity.UserID).Bool("demo", identity.Demo)
			if identity.SessionID != "" {
				event = event.Str("session", shortID(identity.SessionID))
			}
		}

		event.Send()
	})
}

// shortID truncates a session id to a prefix usable for log correlation.
func shortID(id string) string {
	const keep = 8
	if len(id) <= keep {
		return id
	}
	return id[:keep] + "..."
}
