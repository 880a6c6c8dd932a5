package models

import (
	"database/sql"
	"strings"
	"time"
)

// User is a member of the household.
type User struct {
	ID            int64
	Email         string
	PasswordHash  sql.NullString // empty for OAuth-only accounts
	FirstName     sql.NullString
	FullName      sql.NullString
	IsAdmin       bool
	OAuthProvider sql.NullString
	OAuthSubject  sql.NullString
	CreatedAt     time.Time
}

// DisplayName picks the friendliest available name for a user:
// first name, then the first word of the full name, then the local
// part of the email, then a generic fallback.
func (u *User) DisplayName() string {
	if u.FirstName.Valid && strings.TrimSpace(u.FirstName.String) != "" {
		return strings.TrimSpace(u.FirstName.String)
	}
	if u.FullName.Valid && strings.TrimSpace(u.FullName.String) != "" {
		return strings.Fields(u.FullName.String)[0]
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return "Guest"
}

// Session is a server-side login session backed by a database row.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired checks if the session has passed its expiry time
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// PushSubscription holds one browser's Web Push endpoint and keys.
type PushSubscription struct {
	ID        int64
	UserID    int64
	Endpoint  string
	P256dh    string
	Auth      string
	CreatedAt time.Time
}
