package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/watchlist/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxSecretBytes is the longest secret bcrypt will hash.
const MaxSecretBytes = 72

// HashSecret returns a bcrypt hash of secret at the default cost.
func HashSecret(secret string) (string, error) {
	if len(secret) > MaxSecretBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", common.ErrorValidation, MaxSecretBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// CompareSecret reports whether secret matches hash. A malformed hash is an
// error; a mismatch is not. Secrets longer than MaxSecretBytes never match,
// since no such secret can have been hashed and bcrypt would only compare
// their prefix.
func CompareSecret(hash, secret string) (bool, error) {
	if len(secret) > MaxSecretBytes {
		// same bcrypt work as a real comparison
		_ = bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret[:MaxSecretBytes]))
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare secret: %w", err)
	}
}
