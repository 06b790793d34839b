package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/article-likes/internal/like/client"
	"github.com/tair/article-likes/pkg/auth"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
)

// AuthMiddleware validates the bearer token. The token itself is kept in the
// context so lookups against the article and user services carry it along.
func AuthMiddleware(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			token := parts[1]
			claims, err := auth.ValidateToken(secret, token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
					ctx = client.WithBearerToken(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

func userIDFromContext(r *http.Request) (uint, bool) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	return userID, ok && userID != 0
}

func usernameFromContext(r *http.Request) string {
	username, _ := r.Context().Value(UsernameKey).(string)
	return username
}
