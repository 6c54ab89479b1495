package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/avlin/browsercraft-go/internal/api/apierr"
	"github.com/avlin/browsercraft-go/internal/model"
	"github.com/avlin/browsercraft-go/internal/services/session"
)

type contextKey string

const (
	usernameContextKey contextKey = "username"
	tokenContextKey    contextKey = "token"
)

// Auth creates authentication middleware. A valid token is refreshed
// on every authenticated request, so active users stay logged in.
func Auth(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			username, err := sessions.Validate(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}
			sessions.Refresh(token)

			ctx := r.Context()
			ctx = context.WithValue(ctx, usernameContextKey, username)
			ctx = context.WithValue(ctx, tokenContextKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext returns the authenticated username, if any
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameContextKey).(string)
	return username, ok
}

// TokenFromContext returns the session token for the request, if any
func TokenFromContext(ctx context.Context) (model.SessionToken, bool) {
	token, ok := ctx.Value(tokenContextKey).(model.SessionToken)
	return token, ok
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) model.SessionToken {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return model.SessionToken(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := r.Cookie("session_token"); err == nil {
		return model.SessionToken(cookie.Value)
	}
	return ""
}
