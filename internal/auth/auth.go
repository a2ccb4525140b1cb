package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"budgetguard/internal/storage"
)

var (
	// ErrUsernameTaken is returned by Register when the username is
	// already in use, so callers can tell it apart from storage faults.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned by Login for an unknown username
	// or a wrong password; the two cases are deliberately not
	// distinguishable from the outside.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Service handles account registration and sign-in over the repository.
type Service struct {
	storage *storage.SQLiteRepository
}

func NewService(storage *storage.SQLiteRepository) *Service {
	return &Service{storage: storage}
}

// Register creates a new account with a fresh salt and salted hash.
func (s *Service) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username cannot be empty")
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}

	salt, err := GenerateSalt()
	if err != nil {
		return err
	}
	hash := HashPassword(password, salt)

	if _, err := s.storage.CreateUser(ctx, username, hash, salt); err != nil {
		if errors.Is(err, storage.ErrUsernameExists) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("register: %w", err)
	}

	slog.InfoContext(ctx, "Account registered", "username", username)
	return nil
}

// Login verifies the credentials and returns the user's ID.
func (s *Service) Login(ctx context.Context, username, password string) (int64, error) {
	u, err := s.storage.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, storage.ErrNotFound) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, fmt.Errorf("login: %w", err)
	}

	if !verifyPassword(password, u.Salt, u.PasswordHash) {
		return 0, ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "User signed in", "user_id", u.ID, "username", u.Username)
	return u.ID, nil
}
