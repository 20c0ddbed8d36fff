package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sentraid/sentra/internal/pkg/goerror"
)

type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	Token       string
	OtpRequired bool
	// OtpKeyRef is the opaque handle of the secret the code must come from.
	OtpKeyRef string
	// DebugOTP carries the current code when debug exposure is enabled.
	// Never set outside local development.
	DebugOTP string
}

// Login verifies the password, makes sure the principal has a TOTP secret
// (enrolling one on first login), and issues a session token. The session
// is not fully authenticated until the code is verified.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	username := strings.TrimSpace(in.Username)
	principal, err := s.repoDB.GetPrincipalByUsername(ctx, username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "principal not found", "username", username)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get principal by username", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(principal.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password does not match", "principal_id", principal.ID)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	material, err := s.ensureSecret(ctx, principal)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.Generate(principal.ID, principal.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "principal_id", principal.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if material.enrolled {
		s.goroutine.Go(ctx, func(ctx context.Context) error {
			return s.repoMessaging.PublishSecretEnrolled(ctx, SecretEnrolledEvent{
				PrincipalID:     principal.ID,
				Username:        principal.Username,
				SecretRef:       material.ref,
				ProvisioningURI: material.uri,
			})
		})
	}

	s.goroutine.Go(ctx, func(ctx context.Context) error {
		return s.repoDB.TouchLastLogin(ctx, principal.ID)
	})

	out := &LoginOutput{Token: token, OtpRequired: true, OtpKeyRef: material.ref}

	if s.cfg.GetBool("modules.auth.debug_expose_otp") {
		code, err := s.totp.GenerateCode(material.secret, s.clock.Now())
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate debug otp code", "principal_id", principal.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		out.DebugOTP = code
	}

	return out, nil
}
