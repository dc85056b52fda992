package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// PasswordSpecialChars is the set of characters of which at least
	// one must appear in every password.
	PasswordSpecialChars = `!@#$%^&*()_-+=[]{};':"\|,.<>/?`

	// BcryptCost is the cost factor for bcrypt password hashing.
	BcryptCost = 10
)

var (
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrPasswordNoSpecial = errors.New("password must include at least one special character")
)

// CheckPasswordStrength validates the password policy: minimum length
// and at least one special character.
func CheckPasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if !strings.ContainsAny(password, PasswordSpecialChars) {
		return ErrPasswordNoSpecial
	}
	return nil
}

// HashPassword returns the bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
