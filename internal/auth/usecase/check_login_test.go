package usecase_test

import (
	"context"
	"testing"

	"github.com/sentraid/sentra/internal/auth/usecase"
)

func TestCheckLogin(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")

		// Act
		out, err := fx.uc.CheckLogin(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("expected check login to succeed, got %v", err)
		}
		if out.LoggedIn || out.OtpVerified {
			t.Fatalf("expected anonymous state, got %+v", out)
		}
	})

	t.Run("LoggedInNotVerified", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))

		// Act
		out, err := fx.uc.CheckLogin(ctx)

		// Assert
		if err != nil {
			t.Fatalf("expected check login to succeed, got %v", err)
		}
		if !out.LoggedIn || out.OtpVerified {
			t.Fatalf("expected logged in without otp, got %+v", out)
		}
	})

	t.Run("FullyVerified", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))
		if _, err := fx.uc.OTPLogin(ctx, usecase.OTPLoginInput{Code: fx.currentCode(t)}); err != nil {
			t.Fatalf("otp login failed: %v", err)
		}

		// Act
		out, err := fx.uc.CheckLogin(ctx)

		// Assert
		if err != nil {
			t.Fatalf("expected check login to succeed, got %v", err)
		}
		if !out.LoggedIn || !out.OtpVerified {
			t.Fatalf("expected a fully verified state, got %+v", out)
		}
	})

	t.Run("AfterLogout", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))
		if _, err := fx.uc.Logout(ctx); err != nil {
			t.Fatalf("logout failed: %v", err)
		}

		// Act
		out, err := fx.uc.CheckLogin(ctx)

		// Assert
		if err != nil {
			t.Fatalf("expected check login to succeed, got %v", err)
		}
		if out.LoggedIn {
			t.Fatalf("expected logged out state after logout, got %+v", out)
		}
	})
}
