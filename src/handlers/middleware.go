// backend/src/handlers/middleware.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/username/bankfolio/src/logger"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// SessionHeader carries the client's session identifier. A session is a
// browser-tab-scoped accumulation of uploaded statements, not a user
// account; the server issues one on the first upload.
const SessionHeader = "X-Session-ID"

// ContextualLoggerMiddleware attaches a request-scoped logger carrying a
// generated request ID to every request's context.
func ContextualLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()

		ctxLogger := logger.L.With(slog.String("requestID", requestID))

		ctx := logger.ToContext(r.Context(), ctxLogger)
		ctx = context.WithValue(ctx, requestIDContextKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionIDFromRequest reads the session header; the empty string means
// the client has no session yet.
func sessionIDFromRequest(r *http.Request) string {
	return r.Header.Get(SessionHeader)
}
