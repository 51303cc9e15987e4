package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/xelth-com/sapmockgo/internal/auth"
	"github.com/xelth-com/sapmockgo/internal/models"
)

type contextKey string

// TokenContextKey carries the bearer token through the request context.
const TokenContextKey contextKey = "token"

// TokenFromContext returns the bearer token extracted by AuthMiddleware.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenContextKey).(string)
	return token
}

func respondAuthError(w http.ResponseWriter, err error) {
	resp := models.ErrorResponse(models.CodeAuthInvalidToken, "Invalid or expired token")
	if errors.Is(err, auth.ErrTokenExpired) {
		resp = models.ErrorResponse(models.CodeAuthExpiredToken, "Token has expired")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(resp)
}

// AuthMiddleware verifies bearer tokens against the access gate
func AuthMiddleware(gate *auth.Gate, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			// Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondAuthError(w, auth.ErrTokenInvalid)
				return
			}
			token = parts[1]
		}

		if err := gate.Authorize(r.Context(), token); err != nil {
			respondAuthError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), TokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
