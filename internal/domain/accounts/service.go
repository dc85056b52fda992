package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prajayganiga-design/Mini-project/internal/auth"
)

// TokenIssuer mints signed tokens for authenticated accounts.
type TokenIssuer interface {
	Generate(userID int64, email string, role auth.Role) (string, error)
}

// Service implements signup and login on top of a Repository.
type Service struct {
	repo   Repository
	tokens TokenIssuer
	logger zerolog.Logger
}

func NewService(repo Repository, tokens TokenIssuer, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger.With().Str("component", "accounts").Logger(),
	}
}

// Register creates a new account. All input checks run before any
// write, so a rejected signup leaves no partial state behind.
func (s *Service) Register(ctx context.Context, email, password, role string) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.TrimSpace(role)

	if email == "" || password == "" || role == "" {
		return 0, ValidationError{Message: "Email, password, and role are required"}
	}

	normalized, ok := auth.NormalizeRole(role)
	if !ok {
		return 0, ValidationError{Message: "Role must be user or admin"}
	}

	if err := auth.CheckPasswordStrength(password); err != nil {
		return 0, ValidationError{Message: "Password must be at least 8 characters and include one special character"}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, Account{
		Email:        email,
		PasswordHash: hash,
		Role:         normalized,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("account_id", id).Str("role", string(normalized)).Msg("account registered")
	return id, nil
}

// AuthenticatedUser is the public view of an account returned on login.
type AuthenticatedUser struct {
	ID    int64     `json:"id"`
	Email string    `json:"email"`
	Role  auth.Role `json:"role"`
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password both map to ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, *AuthenticatedUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.VerifyPassword(account.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(account.ID, account.Email, account.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Int64("account_id", account.ID).Msg("login succeeded")
	return token, &AuthenticatedUser{ID: account.ID, Email: account.Email, Role: account.Role}, nil
}
