package service

import (
	"context"
	"fmt"
	"strings"

	"sunescape/internal/models"
	"sunescape/internal/repository"
	"sunescape/internal/security"
	"sunescape/internal/validation"
)

// AuthService handles registration, login and password recovery
type AuthService struct {
	users    *repository.UserRepository
	resets   *security.ResetTokenIssuer
	notifier *Notifier
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, resets *security.ResetTokenIssuer, notifier *Notifier) *AuthService {
	return &AuthService{users: users, resets: resets, notifier: notifier}
}

// Register creates a new account and sends the welcome email
func (s *AuthService) Register(email, password, firstName, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(email, hash, strings.TrimSpace(firstName), strings.TrimSpace(fullName))
	if err != nil {
		return nil, err
	}

	s.notifier.Welcome(user)
	return user, nil
}

// Login checks the credentials and returns the matching user
func (s *AuthService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.PasswordHash.Valid {
		return nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(user.PasswordHash.String, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// RequestPasswordReset mails a reset link when the address matches an
// account. Unknown addresses return nil so the form cannot be used to
// probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := s.resets.Issue(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}
	return s.notifier.PasswordReset(ctx, user, token)
}

// ResetPassword verifies the token and replaces the user's password
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}
	userID, err := s.resets.Verify(token)
	if err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.UpdatePassword(userID, hash)
}

// OAuthLogin resolves an OAuth identity to an account: an existing link
// wins, then a matching email gets linked, otherwise a passwordless
// account is created.
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.User, error) {
	user, err := s.users.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}

	user, err = s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if err := s.users.LinkOAuth(user.ID, provider, subject); err != nil {
			return nil, err
		}
		return user, nil
	}

	user, err = s.users.CreateUser(email, "", "", strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if err := s.users.LinkOAuth(user.ID, provider, subject); err != nil {
		return nil, err
	}
	s.notifier.Welcome(user)
	return user, nil
}

// UpdateProfile changes a member's display names
func (s *AuthService) UpdateProfile(userID int64, firstName, fullName string) error {
	return s.users.UpdateProfile(userID, strings.TrimSpace(firstName), strings.TrimSpace(fullName))
}
