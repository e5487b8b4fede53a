// Package service holds the domain rules; handlers translate its errors into
// HTTP behavior.
package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService implements registration and credential checks.
type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register validates the submitted credentials, hashes the password, and
// persists a new user. The caller redirects to the login form on success.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" {
		observability.RegistrationsTotal.WithLabelValues("validation").Inc()
		return models.NewValidationError("Username is required.")
	}
	if password == "" {
		observability.RegistrationsTotal.WithLabelValues("validation").Inc()
		return models.NewValidationError("Password is required.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashed),
	}
	// The unique index on username is the authority on duplicates; the
	// repository translates its violation into a conflict.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if models.ErrorCode(err) == models.CodeConflict {
			observability.RegistrationsTotal.WithLabelValues("conflict").Inc()
		}
		return err
	}

	observability.RegistrationsTotal.WithLabelValues("success").Inc()
	return nil
}

// Authenticate checks the submitted credentials and returns the matched user.
//
// The two failure messages are distinct on purpose: the original system
// reports "Incorrect username." and "Incorrect password." separately, and
// that is preserved as observable behavior. bcrypt's comparison is
// constant-time against the stored hash.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.LoginAttempts.WithLabelValues("unknown_username").Inc()
		return nil, models.NewValidationError("Incorrect username.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		observability.LoginAttempts.WithLabelValues("wrong_password").Inc()
		return nil, models.NewValidationError("Incorrect password.")
	}

	observability.LoginAttempts.WithLabelValues("success").Inc()
	return user, nil
}

// GetUser resolves a session-carried id to a user row.
func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
