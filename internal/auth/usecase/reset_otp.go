package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sentraid/sentra/internal/pkg/goerror"
	"github.com/sentraid/sentra/internal/pkg/mfa"
)

type ResetOTPOutput struct {
	// NewSecretRef is the opaque handle minted for the replacement secret.
	NewSecretRef    string
	ProvisioningURI string
	// DebugOTP carries the current code for the new secret when debug
	// exposure is enabled. Never set outside local development.
	DebugOTP string
}

// ResetOTP replaces the principal's TOTP secret with a fresh one. Codes
// from the old secret stop working immediately and any standing
// verification grant is withdrawn.
func (s *Usecase) ResetOTP(ctx context.Context) (*ResetOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "ResetOTP")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
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

	secret, uri, err := s.totp.Generate(principal.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp secret", "principal_id", principal.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	sealed, err := s.mfaEncryptor.Encrypt([]byte(secret), mfa.Scope{
		PrincipalID: principal.ID,
		Purpose:     mfa.PurposeOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to seal otp secret", "principal_id", principal.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ref := s.uuid.Generate()
	if err := s.repoDB.RotateOTPSecret(ctx, principal.ID, sealed, ref, sealKeyVersion); err != nil {
		slog.ErrorContext(ctx, "failed to repo rotate otp secret", "principal_id", principal.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoCache.DeleteGrant(ctx, principal.ID); err != nil {
		slog.ErrorContext(ctx, "failed to delete verification grant", "principal_id", principal.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(ctx, func(ctx context.Context) error {
		return s.repoMessaging.PublishSecretRotated(ctx, SecretRotatedEvent{
			PrincipalID:     principal.ID,
			Username:        principal.Username,
			SecretRef:       ref,
			ProvisioningURI: uri,
		})
	})

	out := &ResetOTPOutput{NewSecretRef: ref, ProvisioningURI: uri}

	if s.cfg.GetBool("modules.auth.debug_expose_otp") {
		code, err := s.totp.GenerateCode(secret, s.clock.Now())
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate debug otp code", "principal_id", principal.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		out.DebugOTP = code
	}

	return out, nil
}
