package console

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/league-panel/internal/credentials"
	"github.com/league-panel/internal/logging"
	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/session"
)

type ctxKey int

const controllerKey ctxKey = iota

// controllerFrom returns the session controller bound to the request
func controllerFrom(r *http.Request) *session.Controller {
	ctrl, _ := r.Context().Value(controllerKey).(*session.Controller)
	return ctrl
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware gives every request an id and a request-scoped logger, and logs the outcome.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		logger := s.logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r.WithContext(logging.WithLogger(r.Context(), logger)))

		logger.WithFields(map[string]interface{}{
			"status":      wrapped.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": r.RemoteAddr,
		}).Info("request handled")
	})
}

// recoveryMiddleware recovers from panics and renders a 500 page.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.FromContext(r.Context()).WithField("panic", rec).Error("handler panicked")
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// sessionMiddleware binds the browser's credential store to the request context,
// where the gateway finds the token, and attaches a session controller over it.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := s.factory.ForRequest(w, r)
		ctx := credentials.WithStore(r.Context(), store)
		ctx = context.WithValue(ctx, controllerKey, s.sessions.Controller(store))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession sends anonymous visitors to the login screen.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctrl := controllerFrom(r)
		if ctrl == nil || !ctrl.IsAuthenticated(r.Context()) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// auditMiddleware records every mutating request made by a signed-in operator.
// Entries always go to the log; they are persisted when a recorder is configured.
func (s *Server) auditMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		operator := controllerFrom(r).Username(r.Context())

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		entry := &models.AuditEntry{
			ID:         uuid.New(),
			RequestID:  w.Header().Get("X-Request-ID"),
			Operator:   operator,
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     wrapped.statusCode,
			Duration:   time.Since(start),
			RemoteAddr: r.RemoteAddr,
			CreatedAt:  time.Now().UTC(),
		}

		logger := logging.FromContext(r.Context()).Component("audit")
		logger.WithFields(map[string]interface{}{
			"operator": entry.Operator,
			"status":   entry.Status,
		}).Info("operator action")

		if s.audit == nil {
			return
		}
		// The operator's response is already written; persist on a detached context.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 5*time.Second)
		defer cancel()
		if err := s.audit.Record(ctx, entry); err != nil {
			logger.WithError(err).Warn("failed to persist audit entry")
		}
	})
}
