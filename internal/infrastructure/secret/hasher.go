package secret

import (
	usecase "realty/backend/internal/usecase/auth"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes secrets with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a hasher at cost 10.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Ensure BcryptHasher implements the SecretHasher interface.
var _ usecase.SecretHasher = (*BcryptHasher)(nil)

// Hash returns the bcrypt hash of the secret. The salt is random per call, so
// the output is self-describing and differs between calls.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the secret matches the hash. A mismatch is a plain
// false, never an error.
func (h *BcryptHasher) Verify(secret, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}
