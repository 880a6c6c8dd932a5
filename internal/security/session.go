package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"sunescape/internal/models"
)

const sessionCookieName = "session_id"

// SessionStore is the persistence the session manager needs. The
// repository layer provides the real implementation.
type SessionStore interface {
	CreateSession(s *models.Session) error
	GetSession(id string) (*models.Session, error)
	DeleteSession(id string) error
	DeleteExpiredSessions() (int64, error)
}

// SessionManager issues and resolves cookie-backed login sessions.
type SessionManager struct {
	store    SessionStore
	duration time.Duration
	secure   bool
}

// NewSessionManager creates a session manager. secure controls the
// cookie's Secure flag and should be true behind TLS.
func NewSessionManager(store SessionStore, duration time.Duration, secure bool) *SessionManager {
	return &SessionManager{store: store, duration: duration, secure: secure}
}

// Create starts a new session for the user and sets the session cookie.
func (m *SessionManager) Create(w http.ResponseWriter, userID int64) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(m.duration),
	}
	if err := m.store.CreateSession(session); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

// Get resolves the request's session cookie to a live session. It
// returns nil without error when no valid session exists.
func (m *SessionManager) Get(r *http.Request) (*models.Session, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	session, err := m.store.GetSession(cookie.Value)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired() {
		return nil, nil
	}
	return session, nil
}

// Destroy removes the session row and clears the cookie.
func (m *SessionManager) Destroy(w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := m.store.DeleteSession(cookie.Value); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// CleanupExpired deletes expired session rows and returns the count removed.
func (m *SessionManager) CleanupExpired() (int64, error) {
	return m.store.DeleteExpiredSessions()
}
