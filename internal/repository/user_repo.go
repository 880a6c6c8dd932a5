package repository

import (
	"database/sql"
	"fmt"
	"time"

	"sunescape/internal/database"
	"sunescape/internal/models"
)

// UserRepository handles database operations for users, sessions and
// push subscriptions
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, password_hash, first_name, full_name, is_admin, oauth_provider, oauth_subject, created_at"

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.FullName,
		&user.IsAdmin,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

// CreateUser inserts a new user. The first account registered becomes
// the admin.
func (r *UserRepository) CreateUser(email, passwordHash, firstName, fullName string) (*models.User, error) {
	var userCount int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	isAdmin := userCount == 0

	query := `
		INSERT INTO users (email, password_hash, first_name, full_name, is_admin)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, nullableString(passwordHash), nullableString(firstName), nullableString(fullName), isAdmin)
	if err != nil {
		if r.db.GetDialect().IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: nullableString(passwordHash),
		FirstName:    nullableString(firstName),
		FullName:     nullableString(fullName),
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return scanUser(r.db.QueryRow(query, email))
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRow(query, id))
}

// GetUserByOAuth retrieves a user by provider and subject
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE oauth_provider = ? AND oauth_subject = ?"
	return scanUser(r.db.QueryRow(query, provider, subject))
}

// LinkOAuth attaches an OAuth identity to an existing account
func (r *UserRepository) LinkOAuth(userID int64, provider, subject string) error {
	query := "UPDATE users SET oauth_provider = ?, oauth_subject = ? WHERE id = ?"
	if _, err := r.db.Exec(query, provider, subject, userID); err != nil {
		return fmt.Errorf("failed to link oauth identity: %w", err)
	}
	return nil
}

// ListUsers returns every member ordered by email
func (r *UserRepository) ListUsers() ([]*models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY email"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateProfile sets the user's display names
func (r *UserRepository) UpdateProfile(id int64, firstName, fullName string) error {
	query := "UPDATE users SET first_name = ?, full_name = ? WHERE id = ?"
	if _, err := r.db.Exec(query, nullableString(firstName), nullableString(fullName), id); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdatePassword replaces the user's password hash
func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	query := "UPDATE users SET password_hash = ? WHERE id = ?"
	if _, err := r.db.Exec(query, passwordHash, id); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreateSession stores a new login session
func (r *UserRepository) CreateSession(s *models.Session) error {
	query := "INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)"
	if _, err := r.db.Exec(query, s.ID, s.UserID, s.CreatedAt, s.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID
func (r *UserRepository) GetSession(id string) (*models.Session, error) {
	query := "SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?"
	s := &models.Session{}
	err := r.db.QueryRow(query, id).Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// DeleteSession removes a session
func (r *UserRepository) DeleteSession(id string) error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry and returns
// how many were deleted
func (r *UserRepository) DeleteExpiredSessions() (int64, error) {
	result, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}

// SavePushSubscription stores a browser's push subscription, replacing
// any previous row for the same endpoint
func (r *UserRepository) SavePushSubscription(sub *models.PushSubscription) error {
	// Endpoint is unique; drop any stale owner first so re-registering
	// after login as another user works
	if _, err := r.db.Exec("DELETE FROM push_subscriptions WHERE endpoint = ?", sub.Endpoint); err != nil {
		return fmt.Errorf("failed to replace push subscription: %w", err)
	}
	query := "INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth)
	if err != nil {
		return fmt.Errorf("failed to save push subscription: %w", err)
	}
	sub.ID = id
	return nil
}

// DeletePushSubscription removes a subscription by endpoint
func (r *UserRepository) DeletePushSubscription(endpoint string) error {
	if _, err := r.db.Exec("DELETE FROM push_subscriptions WHERE endpoint = ?", endpoint); err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}
	return nil
}

// ListPushSubscriptions returns every stored subscription
func (r *UserRepository) ListPushSubscriptions() ([]*models.PushSubscription, error) {
	query := "SELECT id, user_id, endpoint, p256dh, auth, created_at FROM push_subscriptions"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*models.PushSubscription
	for rows.Next() {
		sub := &models.PushSubscription{}
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan push subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
