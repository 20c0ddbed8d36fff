package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/sentraid/sentra/internal/auth/usecase"
	"github.com/sentraid/sentra/internal/pkg/goerror"
)

func TestInfo(t *testing.T) {
	t.Run("WithGrant", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))
		if _, err := fx.uc.OTPLogin(ctx, usecase.OTPLoginInput{Code: fx.currentCode(t)}); err != nil {
			t.Fatalf("otp login failed: %v", err)
		}

		// Act
		out, err := fx.uc.Info(ctx)

		// Assert
		if err != nil {
			t.Fatalf("expected info to succeed, got %v", err)
		}
		if out.ID != 1 || out.Username != testUsername || !out.IsSuperuser {
			t.Fatalf("unexpected profile: %+v", out)
		}
		if !out.OtpVerified {
			t.Fatalf("expected otp_verified true")
		}
	})

	t.Run("WithoutGrantTerminatesSession", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))

		// Act
		_, err := fx.uc.Info(ctx)

		// Assert
		assertBusinessCode(t, err, goerror.CodeForbidden)

		// the session token must be dead afterwards
		_, err = fx.uc.OTPStatus(ctx)
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("ExpiredGrantTerminatesSession", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))
		if _, err := fx.uc.OTPLogin(ctx, usecase.OTPLoginInput{Code: fx.currentCode(t)}); err != nil {
			t.Fatalf("otp login failed: %v", err)
		}
		fx.clk.T = fx.clk.T.Add(61 * time.Second)

		// Act
		_, err := fx.uc.Info(ctx)

		// Assert
		assertBusinessCode(t, err, goerror.CodeForbidden)
	})

	t.Run("WithoutSession", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")

		// Act
		_, err := fx.uc.Info(context.Background())

		// Assert
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
	})
}
