package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify checks password against a bcrypt hash, or against a legacy
// plaintext value in constant time.
func (h *BcryptPasswordHasher) Verify(password, stored string) error {
	if h.NeedsRehash(stored) {
		if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) != 1 {
			return fmt.Errorf("password verification failed")
		}
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		// same message for mismatch and malformed hash
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// NeedsRehash reports whether stored is a legacy plaintext password, meaning
// anything that does not parse as a bcrypt hash.
func (h *BcryptPasswordHasher) NeedsRehash(stored string) bool {
	_, err := bcrypt.Cost([]byte(stored))
	return err != nil
}
