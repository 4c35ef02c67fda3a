// Package service holds the application services. Each service receives the
// repository through its constructor; there is no process-wide repository
// handle.
package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"gamevault/backend/internal/apperror"
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
)

const minPasswordLength = 8

// AuthService handles registration and credential checks. Session handling
// (token issue and verification) lives at the transport layer.
type AuthService struct {
	repo repository.Repository
}

// NewAuthService creates an AuthService backed by the given repository.
func NewAuthService(repo repository.Repository) *AuthService {
	return &AuthService{repo: repo}
}

// Register creates a new account. The username collision check is
// case-insensitive because the repository stores usernames lowercased.
func (s *AuthService) Register(username, password string) (*models.User, error) {
	if models.NormalizeUsername(username) == "" {
		return nil, apperror.NewValidation("username must not be empty")
	}
	if len(password) < minPasswordLength {
		return nil, apperror.NewValidation("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.New(apperror.InternalError, "failed to hash password", err)
	}

	user := &models.User{
		Username:     models.NormalizeUsername(username),
		DisplayName:  username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.AddUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair. An unknown user and a hash
// mismatch both surface as an auth failure; the messages differ so the
// service layer can log them apart, but handlers map both to 401.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.repo.GetUser(username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuth("unknown user")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewAuth("invalid credentials")
	}
	return user, nil
}

// GetUser looks up an account by username.
func (s *AuthService) GetUser(username string) (*models.User, error) {
	return s.repo.GetUser(username)
}
