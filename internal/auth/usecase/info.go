package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sentraid/sentra/internal/pkg/goerror"
)

type InfoOutput struct {
	ID          uint64
	Username    string
	IsSuperuser bool
	CreatedAt   time.Time
	LastLoginAt *time.Time
	OtpVerified bool
}

// Info returns the authenticated principal's profile. It is the guarded
// resource of the flow: without a standing verification grant the session is
// forcibly terminated and the caller must log in again from the start.
func (s *Usecase) Info(ctx context.Context) (*InfoOutput, error) {
	ctx, span := s.startSpan(ctx, "Info")
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

	if !ok {
		slog.WarnContext(ctx, "verification grant missing, terminating session", "principal_id", clm.PrincipalID)
		if err := s.terminateSession(ctx, clm); err != nil {
			return nil, err
		}
		return nil, goerror.NewBusiness("one-time code verification required", goerror.CodeForbidden)
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

	return &InfoOutput{
		ID:          principal.ID,
		Username:    principal.Username,
		IsSuperuser: principal.IsSuperuser,
		CreatedAt:   principal.CreatedAt,
		LastLoginAt: principal.LastLoginAt,
		OtpVerified: true,
	}, nil
}
