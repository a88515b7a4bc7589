package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"go-storefront/utils"
)

// Key type for context
type contextKey string

const SessionContextKey = contextKey("session")

// SessionHeader carries the session token back to the client
const SessionHeader = "X-Session-Token"

// SessionMiddleware resolves the caller's anonymous cart session from the
// Authorization bearer token. A missing or invalid token starts a new
// session. The current token is always echoed in SessionHeader, re-signed
// once it is past half its lifetime so an active visitor keeps the session.
func SessionMiddleware(tokens *utils.SessionTokens, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))

			var sessionID string
			issue := true
			if token != "" {
				claims, err := tokens.Parse(token)
				if err == nil {
					sessionID = claims.SessionID
					issue = tokens.NeedsRefresh(claims, time.Now())
				} else {
					logger.Debug().Err(err).Msg("discarding session token")
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			if issue {
				var err error
				token, err = tokens.Generate(sessionID)
				if err != nil {
					logger.Error().Err(err).Msg("failed to issue session token")
					http.Error(w, "Could not start session", http.StatusInternalServerError)
					return
				}
			}

			setLogSessionID(r.Context(), sessionID)
			w.Header().Set(SessionHeader, token)
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
		})
	}
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// WithSessionID returns a copy of ctx carrying the session id
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionContextKey, sessionID)
}

// SessionIDFromContext returns the session id stored by SessionMiddleware
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionContextKey).(string)
	return id, ok && id != ""
}
