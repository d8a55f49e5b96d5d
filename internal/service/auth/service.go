// Package auth handles authentication business logic: credential
// verification against stored bcrypt hashes and new-account registration.
// The service is framework-agnostic and can be used with any HTTP framework or CLI.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

// Password policy.
const minPasswordLength = 8

// Sentinel errors for authentication operations.
var (
	// ErrInvalidCredentials indicates the username/password pair did not
	// verify. The same error covers unknown users so probing for valid
	// usernames yields nothing.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken indicates the requested username already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken indicates the requested email already exists.
	ErrEmailTaken = errors.New("email already taken")
)

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// RegisterInput represents the input parameters for creating an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Service verifies credentials and registers accounts against the user store.
type Service struct {
	Users repository.UserRepository
}

// ValidateCredentials verifies the username/password pair and returns the
// matching user. Unknown users and wrong passwords are indistinguishable to
// the caller.
func (s *Service) ValidateCredentials(ctx context.Context, creds Credentials) (*entity.User, error) {
	user, err := s.Users.GetByUsername(ctx, creds.Username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		// Burn a comparison anyway to keep timing uniform.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000u"), []byte(creds.Password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new account with a bcrypt-hashed password. Username and
// email must be unused; the role must be one of the platform's three roles.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, &entity.ValidationError{Field: "username", Message: "is required"}
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, &entity.ValidationError{Field: "email", Message: "is required"}
	}
	if len(in.Password) < minPasswordLength {
		return nil, &entity.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	if existing, err := s.Users.GetByUsername(ctx, in.Username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}
	if existing, err := s.Users.GetByEmail(ctx, in.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.RecordUserRegistered(string(role))
	return user, nil
}
