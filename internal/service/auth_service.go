package service

import (
	"legal-ocr-server/internal/domain"
	"legal-ocr-server/pkg/errors"
)

// SupabaseAuthService validates caller tokens against Supabase Auth.
type SupabaseAuthService struct {
	client domain.SupabaseClient
	logger domain.Logger
}

// NewSupabaseAuthService creates an auth service backed by the Supabase client.
func NewSupabaseAuthService(client domain.SupabaseClient, logger domain.Logger) *SupabaseAuthService {
	return &SupabaseAuthService{client: client, logger: logger}
}

// ValidateToken checks a bearer token and returns the authenticated user.
func (s *SupabaseAuthService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if token == "" {
		return nil, errors.NewUnauthorizedError("missing authentication token")
	}
	user, err := s.client.ValidateToken(token)
	if err != nil {
		s.logger.Warn("token validation failed", "error", err.Error())
		return nil, errors.NewUnauthorizedError("invalid or expired token")
	}
	return user, nil
}
