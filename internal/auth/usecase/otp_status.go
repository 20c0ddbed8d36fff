package usecase

import (
	"context"
	"log/slog"

	"github.com/sentraid/sentra/internal/pkg/goerror"
)

type OTPStatusOutput struct {
	Verified bool
}

// OTPStatus reports whether the session still holds a verification grant.
// Reading the status never extends the grant.
func (s *Usecase) OTPStatus(ctx context.Context) (*OTPStatusOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPStatus")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.repoCache.HasGrant(ctx, clm.PrincipalID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read verification grant", "principal_id", clm.PrincipalID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OTPStatusOutput{Verified: ok}, nil
}
