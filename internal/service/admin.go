package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/davoodepb/temucore-shop-hub/internal/repository"
	apperrors "github.com/davoodepb/temucore-shop-hub/pkg/errors"
)

// LoginInput holds the parameters for an admin login attempt.
type LoginInput struct {
	Password string `json:"password" validate:"required"`
}

// AdminService issues and validates opaque admin session tokens against the
// configured passwords.
type AdminService struct {
	sessionRepo repository.SessionRepository
	passwords   []string
	sessionTTL  time.Duration
	logger      *slog.Logger
}

// NewAdminService creates a new admin service. Empty entries in passwords are
// ignored.
func NewAdminService(sessionRepo repository.SessionRepository, passwords []string, sessionTTL time.Duration, logger *slog.Logger) *AdminService {
	valid := make([]string, 0, len(passwords))
	for _, p := range passwords {
		if p != "" {
			valid = append(valid, p)
		}
	}

	return &AdminService{
		sessionRepo: sessionRepo,
		passwords:   valid,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// Login validates the password and returns a fresh session token. Every
// configured password is compared in constant time so timing does not leak
// password prefixes or which entry matched.
func (s *AdminService) Login(ctx context.Context, input LoginInput) (string, error) {
	matched := 0
	for _, p := range s.passwords {
		matched |= subtle.ConstantTimeCompare([]byte(input.Password), []byte(p))
	}
	if matched != 1 {
		s.logger.WarnContext(ctx, "admin login rejected")
		return "", apperrors.Unauthorized("invalid password")
	}

	token := uuid.New().String()
	if err := s.sessionRepo.Save(ctx, token, s.sessionTTL); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	s.logger.InfoContext(ctx, "admin logged in")

	return token, nil
}

// Validate reports whether the given token is a live admin session.
func (s *AdminService) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	return s.sessionRepo.Exists(ctx, token)
}

// Logout revokes a session token. Revoking an unknown token is a no-op.
func (s *AdminService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessionRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.InfoContext(ctx, "admin logged out")

	return nil
}
