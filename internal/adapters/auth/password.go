package auth

import (
	"golang.org/x/crypto/bcrypt"

	"wistiamirror/internal/domain"
)

type bcryptVerifier struct{}

// NewBcryptVerifier returns a PasswordVerifier backed by bcrypt. The stored
// hash is a standard bcrypt digest of the plaintext password.
func NewBcryptVerifier() domain.PasswordVerifier {
	return bcryptVerifier{}
}

func (bcryptVerifier) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
