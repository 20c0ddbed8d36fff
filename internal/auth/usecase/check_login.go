package usecase

import (
	"context"
	"log/slog"

	"github.com/sentraid/sentra/internal/pkg/goerror"
	"github.com/sentraid/sentra/internal/pkg/jwt"
)

type CheckLoginOutput struct {
	LoggedIn    bool
	OtpVerified bool
}

// CheckLogin is a public status check: it reports the session state without ever
// rejecting the request. Anonymous callers simply get logged_in false.
func (s *Usecase) CheckLogin(ctx context.Context) (*CheckLoginOutput, error) {
	ctx, span := s.startSpan(ctx, "CheckLogin")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return &CheckLoginOutput{}, nil
	}

	handle, err := s.revocationHandle(ctx, clm.ID)
	if err != nil {
		return nil, err
	}

	revoked, err := s.repoCache.IsSessionRevoked(ctx, handle)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check session revocation", "principal_id", clm.PrincipalID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if revoked {
		return &CheckLoginOutput{}, nil
	}

	verified, err := s.repoCache.HasGrant(ctx, clm.PrincipalID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read verification grant", "principal_id", clm.PrincipalID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CheckLoginOutput{LoggedIn: true, OtpVerified: verified}, nil
}
