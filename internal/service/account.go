// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and render JSON; services validate and enforce the
// rules; repositories read and write the database. Services receive the
// repository interfaces (not the concrete sqlite.DB) so tests can inject
// in-memory mocks, and they return apperror values rather than HTTP
// status codes — the handler layer owns that translation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/healthfinder/internal/apperror"
	"github.com/sakif/healthfinder/internal/auth"
	"github.com/sakif/healthfinder/internal/model"
	"github.com/sakif/healthfinder/internal/repository"
)

// Validation constants.
const (
	MaxUsernameLength = 50
	MinPasswordLength = 4
)

// AccountService handles registration and authentication.
type AccountService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAccountService creates an AccountService with all dependencies
// injected. The caller (the composition root) decides which repository
// implementation to use.
func NewAccountService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account with a bcrypt-hashed credential.
//
// The username is trimmed but otherwise stored as given — lookups are
// case-sensitive. Duplicate detection happens inside the store's INSERT,
// so two concurrent registrations for the same name can't both succeed.
func (s *AccountService) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Email:        strings.TrimSpace(email),
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.logger.Info("account created", slog.String("username", user.Username))

	return user, nil
}

// Authenticate verifies a username/password pair and returns the account.
//
// Both credential failure modes — unknown username and wrong password —
// surface as the same InvalidCredentials error. The hash comparison step
// runs the same code path in both cases, so neither the response body nor
// its rough timing says which one happened. A storage failure is neither:
// it propagates as an error so a DB outage doesn't read as a bad password.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("loading user for login: %w", err)
		}
		// Burn a bcrypt comparison against a dummy hash so an absent
		// username costs about the same as a wrong password.
		_ = s.passwords.Verify("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW", password)
		return nil, apperror.InvalidCredentials()
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("failed login attempt", slog.String("username", username))
		return nil, apperror.InvalidCredentials()
	}

	return user, nil
}

// Exists reports whether an account exists for the username.
func (s *AccountService) Exists(ctx context.Context, username string) (bool, error) {
	return s.users.Exists(ctx, username)
}

// EnsureAdmin creates the admin account on startup if it doesn't exist.
//
// The admin is a normal row with role=admin, authenticated through the
// same path as everyone else — there is no hard-coded credential check
// anywhere. If the account already exists (normal on every restart after
// the first), this is a no-op; the stored credential is NOT reset to the
// configured one, so rotating the password means deleting the row.
func (s *AccountService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("admin username and password must be set")
	}

	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("checking admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	s.logger.Info("admin account created", slog.String("username", username))
	return nil
}
