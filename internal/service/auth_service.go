package service

import (
	"context"
	"errors"
	"log"
	"time"

	"vocablearn/internal/models"
	"vocablearn/internal/security"
	"vocablearn/internal/validation"
)

var (
	// ErrEmailExists is returned when registering an already-used address
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned for a failed login
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidResetToken is returned for a missing or expired reset token
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// resetTokenTTL is how long a password reset link stays valid
const resetTokenTTL = time.Hour

// UserStore is the user access the auth service needs
type UserStore interface {
	CreateUser(email, passwordHash, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	UpdatePassword(userID int64, passwordHash string) error
	CreatePasswordResetToken(token string, userID int64, expiresAt time.Time) error
	GetPasswordResetToken(token string) (*models.PasswordResetToken, error)
	DeletePasswordResetToken(token string) error
}

// Mailer sends account emails
type Mailer interface {
	SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
}

// AuthService handles registration, login and password resets
type AuthService struct {
	users  UserStore
	tokens *security.TokenManager
	mailer Mailer
}

// NewAuthService creates an auth service
func NewAuthService(users UserStore, tokens *security.TokenManager, mailer Mailer) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer}
}

// Register creates an account and returns the user with an access token
func (s *AuthService) Register(ctx context.Context, req validation.RegisterRequest) (*models.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	existing, err := s.users.GetUserByEmail(req.Email)
	if err != nil {
		return nil, "", NewStorageError("user lookup", err)
	}
	if existing != nil {
		return nil, "", ErrEmailExists
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.CreateUser(req.Email, hash, req.Name)
	if err != nil {
		return nil, "", NewStorageError("user create", err)
	}

	token, err := s.tokens.Mint(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	// Welcome email failure should not fail registration
	if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.Name); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with an access token
func (s *AuthService) Login(req validation.LoginRequest) (*models.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.users.GetUserByEmail(req.Email)
	if err != nil {
		return nil, "", NewStorageError("user lookup", err)
	}
	if user == nil || !security.CheckPassword(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetUser returns the account for an authenticated user ID
func (s *AuthService) GetUser(userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, NewStorageError("user lookup", err)
	}
	if user == nil {
		return nil, NewNotFoundError("user")
	}
	return user, nil
}

// RequestPasswordReset issues a reset token and emails it. Unknown addresses
// succeed silently so the endpoint does not leak which emails exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req validation.PasswordResetRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetUserByEmail(req.Email)
	if err != nil {
		return NewStorageError("user lookup", err)
	}
	if user == nil {
		return nil
	}

	token := security.NewResetToken()
	if err := s.users.CreatePasswordResetToken(token, user.ID, time.Now().Add(resetTokenTTL)); err != nil {
		return NewStorageError("reset token create", err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
		log.Printf("Failed to send password reset email to %s: %v", user.Email, err)
	}

	return nil
}

// ConfirmPasswordReset consumes a reset token and sets the new password
func (s *AuthService) ConfirmPasswordReset(req validation.PasswordResetConfirmRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	token, err := s.users.GetPasswordResetToken(req.Token)
	if err != nil {
		return NewStorageError("reset token lookup", err)
	}
	if token == nil || time.Now().After(token.ExpiresAt) {
		return ErrInvalidResetToken
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(token.UserID, hash); err != nil {
		return NewStorageError("password update", err)
	}
	if err := s.users.DeletePasswordResetToken(req.Token); err != nil {
		return NewStorageError("reset token delete", err)
	}

	return nil
}
