package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassphrase = errors.New("invalid group passphrase")
	ErrWeakPassphrase    = errors.New("passphrase must be at least 8 characters")
)

// MinPassphraseLength is the shortest passphrase accepted for a group.
const MinPassphraseLength = 8

// ValidatePassphrase checks if the passphrase meets minimum requirements.
func ValidatePassphrase(passphrase string) error {
	if len(passphrase) < MinPassphraseLength {
		return ErrWeakPassphrase
	}
	return nil
}

// HashPassphrase validates and hashes a group passphrase with bcrypt.
func HashPassphrase(passphrase string) (string, error) {
	if err := ValidatePassphrase(passphrase); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(hashed), nil
}

// CheckPassphrase compares a passphrase against its stored hash.
func CheckPassphrase(hash, passphrase string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassphrase
	}
	if err != nil {
		return fmt.Errorf("failed to verify passphrase: %w", err)
	}
	return nil
}
