// Package auth turns raw credentials or a session token into a verified user
// identity. Every authenticated operation goes through Authenticate first.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/cryptox"
	"github.com/dmitrijs2005/filekeeper/internal/server/sessions"
	"github.com/dmitrijs2005/filekeeper/internal/server/users"
)

type Service struct {
	repo       users.Repository
	sessions   sessions.Store
	sessionTTL time.Duration
}

func NewService(repo users.Repository, store sessions.Store, sessionTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		sessions:   store,
		sessionTTL: sessionTTL,
	}
}

// SignIn verifies the email/password pair and issues a session token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {

	if email == "" || password == "" {
		return "", common.ErrorUnauthorized
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("%w: user lookup: %v", common.ErrorInternal, err)
	}

	if !cryptox.VerifyPassword(user.PasswordHash, password) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return "", fmt.Errorf("%w: session create: %v", common.ErrorInternal, err)
	}

	return token, nil
}

// SignOut revokes the session for a live token.
func (s *Service) SignOut(ctx context.Context, token string) error {

	if _, err := s.Authenticate(ctx, token); err != nil {
		return err
	}

	if err := s.sessions.Revoke(ctx, token); err != nil {
		return fmt.Errorf("%w: session revoke: %v", common.ErrorInternal, err)
	}

	return nil
}

// Authenticate resolves a token into a user id. Missing, revoked and expired
// tokens all fail with common.ErrorUnauthorized.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {

	if token == "" {
		return "", common.ErrorUnauthorized
	}

	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("%w: session resolve: %v", common.ErrorInternal, err)
	}

	return userID, nil
}
