package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/ports"

	"github.com/rs/zerolog"
)

// SessionCookieName is the cookie carrying the widget session id. Sessions
// are minted by the domain-confirmation flow outside this service; here they
// only resolve to a company id.
const SessionCookieName = "session_id"

// SessionTTL is how long a resolved session is refreshed for on each request.
const SessionTTL = 24 * time.Hour

// Session resolves the session cookie to a company id and stores it on the
// request context. Requests without a resolvable session are answered with
// the standard not_authenticated_request envelope and never reach a handler.
func Session(store ports.SessionStore, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				denySession(w)
				return
			}

			companyID, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				logger.Error().Err(err).Msg("failed to resolve session")
				denySession(w)
				return
			}
			if companyID == "" {
				denySession(w)
				return
			}

			// Sliding expiry. A failed refresh is not worth failing
			// the request over.
			if err := store.Set(r.Context(), cookie.Value, companyID, SessionTTL); err != nil {
				logger.Warn().Err(err).Msg("failed to refresh session")
			}

			ctx := domain.WithCompanyID(r.Context(), companyID)
			ctx = domain.WithSessionID(ctx, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func denySession(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   domain.ErrorCode(domain.ErrNotAuthenticated),
	})
}
