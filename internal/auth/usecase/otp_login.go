package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sentraid/sentra/internal/pkg/goerror"
)

type OTPLoginInput struct {
	Code string `validate:"required,otp"`
}

type OTPLoginOutput struct {
	Verified  bool
	ExpiresAt time.Time
}

// OTPLogin checks the submitted code against the principal's secret and, on
// success, records a verification grant that expires after the configured
// TTL. The grant is never refreshed by later requests.
func (s *Usecase) OTPLogin(ctx context.Context, in OTPLoginInput) (*OTPLoginOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPLogin")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	principal, err := s.repoDB.GetPrincipalByID(ctx, clm.PrincipalID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "principal for session no longer exists", "principal_id", clm.PrincipalID)
		return nil, goerror.NewBusiness("Invalid or expired token", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get principal by id", "principal_id", clm.PrincipalID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !principal.HasSecret() {
		slog.WarnContext(ctx, "principal has no otp secret enrolled", "principal_id", principal.ID)
		return nil, goerror.NewBusiness("no one-time code is enrolled for this account", goerror.CodeInvalidInput)
	}

	secret, err := s.openSecret(ctx, principal)
	if err != nil {
		return nil, err
	}

	if !s.totp.Validate(in.Code, secret, s.clock.Now()) {
		slog.WarnContext(ctx, "one-time code does not match", "principal_id", principal.ID)
		return nil, goerror.NewBusiness("invalid one-time code", goerror.CodeUnauthorized)
	}

	ttl := s.grantTTL()
	if err := s.repoCache.PutGrant(ctx, principal.ID, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to store verification grant", "principal_id", principal.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(ctx, func(ctx context.Context) error {
		return s.repoMessaging.PublishOTPVerified(ctx, OTPVerifiedEvent{
			PrincipalID: principal.ID,
			Username:    principal.Username,
		})
	})

	return &OTPLoginOutput{
		Verified:  true,
		ExpiresAt: s.clock.Now().Add(ttl),
	}, nil
}
