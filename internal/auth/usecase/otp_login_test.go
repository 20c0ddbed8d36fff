package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sentraid/sentra/internal/auth/usecase"
	"github.com/sentraid/sentra/internal/pkg/goerror"
)

func TestOTPLogin(t *testing.T) {
	t.Run("ValidCode", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))

		// Act
		out, err := fx.uc.OTPLogin(ctx, usecase.OTPLoginInput{Code: fx.currentCode(t)})
		fx.settle(t)

		// Assert
		if err != nil {
			t.Fatalf("expected otp login to succeed, got %v", err)
		}
		if !out.Verified {
			t.Fatalf("expected verified true")
		}
		if want := fx.clk.Now().Add(time.Minute); !out.ExpiresAt.Equal(want) {
			t.Fatalf("expected grant expiry %v, got %v", want, out.ExpiresAt)
		}
		if ok, _ := fx.cache.HasGrant(context.Background(), 1); !ok {
			t.Fatalf("expected a verification grant to be stored")
		}
		if len(fx.msg.verified) != 1 {
			t.Fatalf("expected one verified event, got %d", len(fx.msg.verified))
		}
	})

	t.Run("WrongCode", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))

		code := fx.currentCode(t)
		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}

		// Act
		_, err := fx.uc.OTPLogin(ctx, usecase.OTPLoginInput{Code: wrong})

		// Assert
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
		if ok, _ := fx.cache.HasGrant(context.Background(), 1); ok {
			t.Fatalf("expected no grant after a failed code")
		}
	})

	t.Run("StaleCodeFromPreviousPeriod", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))

		stale := fx.currentCode(t)
		fx.clk.T = fx.clk.T.Add(31 * time.Second)
		if stale == fx.currentCode(t) {
			t.Fatalf("test clock did not cross a totp period")
		}

		// Act
		_, err := fx.uc.OTPLogin(ctx, usecase.OTPLoginInput{Code: stale})

		// Assert
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("MalformedCode", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))

		// Act
		_, err := fx.uc.OTPLogin(ctx, usecase.OTPLoginInput{Code: "12345"})

		// Assert
		assertBusinessCode(t, err, goerror.CodeInvalidInput)
		assertStatusCode(t, err, http.StatusBadRequest)
	})

	t.Run("NoSecretEnrolled", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		token, err := fx.jwt.Generate(1, testUsername)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		ctx := fx.authContext(t, token)

		// Act
		_, err = fx.uc.OTPLogin(ctx, usecase.OTPLoginInput{Code: "123456"})

		// Assert
		assertBusinessCode(t, err, goerror.CodeInvalidInput)
		assertStatusCode(t, err, http.StatusBadRequest)
	})

	t.Run("WithoutSession", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")

		// Act
		_, err := fx.uc.OTPLogin(context.Background(), usecase.OTPLoginInput{Code: "123456"})

		// Assert
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestOTPStatus(t *testing.T) {
	t.Run("NotVerified", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))

		// Act
		out, err := fx.uc.OTPStatus(ctx)

		// Assert
		if err != nil {
			t.Fatalf("expected otp status to succeed, got %v", err)
		}
		if out.Verified {
			t.Fatalf("expected verified false before the code check")
		}
	})

	t.Run("VerifiedUntilGrantExpires", func(t *testing.T) {
		// Arrange
		fx := newFixture(t, "")
		ctx := fx.authContext(t, fx.login(t))
		if _, err := fx.uc.OTPLogin(ctx, usecase.OTPLoginInput{Code: fx.currentCode(t)}); err != nil {
			t.Fatalf("otp login failed: %v", err)
		}

		// Act
		before, errBefore := fx.uc.OTPStatus(ctx)
		fx.clk.T = fx.clk.T.Add(61 * time.Second)
		after, errAfter := fx.uc.OTPStatus(ctx)

		// Assert
		if errBefore != nil || errAfter != nil {
			t.Fatalf("expected otp status to succeed, got %v / %v", errBefore, errAfter)
		}
		if !before.Verified {
			t.Fatalf("expected verified true inside the grant ttl")
		}
		if after.Verified {
			t.Fatalf("expected verified false once the grant ttl passed")
		}
	})
}
