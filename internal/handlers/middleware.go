package handlers

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"sunescape/internal/models"
	"sunescape/internal/repository"
	"sunescape/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey    ContextKey = "user"
	SessionContextKey ContextKey = "session"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	sessions *security.SessionManager
	users    *repository.UserRepository
	csrf     *security.CSRFGenerator
	limiter  *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessions *security.SessionManager, users *repository.UserRepository, csrf *security.CSRFGenerator, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		sessions: sessions,
		users:    users,
		csrf:     csrf,
		limiter:  limiter,
	}
}

// RequireAuth is middleware that requires a valid session
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := m.sessions.Get(r)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Something went wrong", "session lookup failed", err)
			return
		}
		if session == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user, err := m.users.GetUserByID(session.UserID)
		if err != nil || user == nil {
			_ = m.sessions.Destroy(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		ctx = context.WithValue(ctx, SessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin is RequireAuth plus an admin check
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			respondWithError(w, http.StatusForbidden, "Admin access required", "", nil)
			return
		}
		next(w, r)
	})
}

// CSRFProtect validates the csrf_token form field against the session
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := GetSessionFromContext(r.Context())
		if session == nil {
			respondWithError(w, http.StatusForbidden, "Invalid request", "csrf check without session", nil)
			return
		}
		token := r.FormValue("csrf_token")
		if token == "" {
			token = r.Header.Get("X-CSRF-Token")
		}
		if !m.csrf.ValidateToken(session.ID, token) {
			respondWithError(w, http.StatusForbidden, "Invalid or expired form token", "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit throttles a handler per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(clientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many attempts, try again shortly", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// clientIP strips the port from RemoteAddr
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetSessionFromContext retrieves the session from the request context
func GetSessionFromContext(ctx context.Context) *models.Session {
	session, ok := ctx.Value(SessionContextKey).(*models.Session)
	if !ok {
		return nil
	}
	return session
}
