// Package accounts manages credentials: signup with password-policy
// enforcement and login with token issuance.
package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/prajayganiga-design/Mini-project/internal/auth"
)

var (
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login when the email is
	// unknown or the password does not match. The two cases are never
	// distinguished to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned by repository lookups that miss.
	ErrNotFound = errors.New("account not found")
)

// ValidationError describes a rejected signup. The message is surfaced
// verbatim in the API error body.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Account is a stored credential set. PasswordHash is the bcrypt hash;
// the plaintext never leaves the signup/login call stack.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         auth.Role
	CreatedAt    time.Time
}

// Repository is the storage contract for accounts. Create must enforce
// email uniqueness and return ErrEmailTaken on conflict.
type Repository interface {
	Create(ctx context.Context, account Account) (int64, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
}
