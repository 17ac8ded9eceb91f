package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/example/parish-booking/internal/application"
	"github.com/example/parish-booking/internal/logging"
	"github.com/example/parish-booking/internal/state"
)

// SnapshotReader exposes the current aggregate to the transport layer.
type SnapshotReader interface {
	Snapshot() state.AppState
}

// RequireSession resolves the bearer token carried by the request into an
// authenticated actor. Tokens whose user no longer exists in the snapshot are
// treated as invalid so deleted accounts lose access immediately.
func RequireSession(sessions *SessionManager, snapshots SnapshotReader, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractTokenFromRequest(r)
			if token == "" {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
				return
			}

			userID, ok := sessions.Resolve(token)
			if !ok {
				responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Message: "The session is no longer valid. Please log in again."})
				return
			}

			user, ok := snapshots.Snapshot().UserByID(userID)
			if !ok {
				sessions.Revoke(token)
				responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Message: "The session is no longer valid. Please log in again."})
				return
			}

			ctx := ContextWithActor(r.Context(), application.Actor{UserID: user.ID, Role: user.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger attaches a request-scoped logger to the context and records
// the request lifecycle.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}

func extractTokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		const prefix = "Bearer "
		if strings.HasPrefix(header, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(header, prefix))
		}
	}
	if cookie, err := r.Cookie("session_token"); err == nil {
		return cookie.Value
	}
	return ""
}
