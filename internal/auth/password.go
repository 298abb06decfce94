package auth

import (
	"fmt"
	"unicode/utf8"

	"debt_ledger/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// ValidatePassword enforces the minimum length on every password path.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		return domain.ErrWeakPassword
	}
	return nil
}

// HashPassword validates and hashes a password with bcrypt.
func HashPassword(password string, cost int) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
