package services

import (
	"context"
	"errors"
	"time"

	"wistiamirror/internal/domain"
)

type authService struct {
	passwords         domain.PasswordVerifier
	tokens            domain.TokenIssuer
	adminPasswordHash string
	tokenExpiry       time.Duration
}

// NewAuthService creates an AuthService that checks the single configured
// admin credential and issues access tokens for the mutating endpoints.
func NewAuthService(passwords domain.PasswordVerifier, tokens domain.TokenIssuer, adminPasswordHash string, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		passwords:         passwords,
		tokens:            tokens,
		adminPasswordHash: adminPasswordHash,
		tokenExpiry:       tokenExpiry,
	}
}

func (s *authService) Login(_ context.Context, password string) (string, error) {
	if s.adminPasswordHash == "" {
		return "", errors.New("admin password is not configured")
	}
	if err := s.passwords.Compare(s.adminPasswordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue("admin", s.tokenExpiry)
	if err != nil {
		return "", err
	}
	return token, nil
}
