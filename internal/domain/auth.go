package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials indicates a failed admin login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenIssuer issues tokens (e.g. JWT) for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Compare(hash, password string) error
}

// AuthService authenticates the configured admin credential and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, password string) (token string, err error)
}
