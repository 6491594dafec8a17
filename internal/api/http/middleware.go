package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"rentify-backend/internal/logger"
	"rentify-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserID returns the authenticated user id stored by AuthMiddleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// AuthMiddleware requires a valid bearer access token and stores the
// subject on the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokens.ValidateToken(token)
			if err != nil {
				respondServiceError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				respondError(w, http.StatusUnauthorized, "access token required")
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggingMiddleware logs every request with its duration and status.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
