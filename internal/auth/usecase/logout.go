package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/sentraid/sentra/internal/pkg/goerror"
	"github.com/sentraid/sentra/internal/pkg/jwt"
)

type LogoutOutput struct{}

// Logout revokes the session token and drops any standing verification
// grant, returning the caller to the anonymous state.
func (s *Usecase) Logout(ctx context.Context) (*LogoutOutput, error) {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.terminateSession(ctx, clm); err != nil {
		return nil, err
	}

	return &LogoutOutput{}, nil
}

// terminateSession denylists the token until its natural expiry and removes
// the principal's verification grant.
func (s *Usecase) terminateSession(ctx context.Context, clm *jwt.Claims) error {
	ttl := time.Duration(0)
	if clm.ExpiresAt != nil {
		ttl = clm.ExpiresAt.Time.Sub(s.clock.Now())
	}

	handle, err := s.revocationHandle(ctx, clm.ID)
	if err != nil {
		return err
	}

	if err := s.repoCache.RevokeSession(ctx, handle, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to revoke session token", "principal_id", clm.PrincipalID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoCache.DeleteGrant(ctx, clm.PrincipalID); err != nil {
		slog.ErrorContext(ctx, "failed to delete verification grant", "principal_id", clm.PrincipalID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
