package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/sentraid/sentra/internal/pkg/clock"
	"github.com/sentraid/sentra/internal/pkg/uid"
)

func testConfig(clk clocker) Config {
	secret := make([]byte, 64)
	for i := range secret {
		secret[i] = byte(i + 1)
	}

	return Config{
		Secret:    secret,
		Issuer:    "sentra-test",
		Audiences: []string{"sentra-test"},
		TTL:       time.Hour,
		Clock:     clk,
		UUID:      uid.NewUUID(),
	}
}

func TestNewHS512(t *testing.T) {
	t.Run("RejectsShortKey", func(t *testing.T) {
		// Arrange
		cfg := testConfig(clock.New())
		cfg.Secret = []byte("too short")

		// Act
		_, err := NewHS512(cfg)

		// Assert
		if !errors.Is(err, ErrSigningKeyTooShort) {
			t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
		}
	})
}

func TestSymmetric(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		s, err := NewHS512(testConfig(clock.New()))
		if err != nil {
			t.Fatalf("failed to build jwt: %v", err)
		}

		// Act
		token, err := s.Generate(7, "alice")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		clm, err := s.Verify(token)

		// Assert
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if clm.PrincipalID != 7 || clm.Username != "alice" {
			t.Fatalf("unexpected claims: %+v", clm)
		}
		if clm.ID == "" {
			t.Fatalf("expected a token id")
		}
		if clm.Subject != "7" {
			t.Fatalf("expected subject 7, got %q", clm.Subject)
		}
	})

	t.Run("RejectsForeignSignature", func(t *testing.T) {
		// Arrange
		issuerSide, err := NewHS512(testConfig(clock.New()))
		if err != nil {
			t.Fatalf("failed to build jwt: %v", err)
		}
		otherCfg := testConfig(clock.New())
		otherCfg.Secret = append([]byte("x"), otherCfg.Secret...)[:64]
		verifierSide, err := NewHS512(otherCfg)
		if err != nil {
			t.Fatalf("failed to build jwt: %v", err)
		}
		token, err := issuerSide.Generate(7, "alice")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		// Act
		_, err = verifierSide.Verify(token)

		// Assert
		if err == nil {
			t.Fatalf("expected a token signed with another key to be rejected")
		}
	})

	t.Run("RejectsExpiredToken", func(t *testing.T) {
		// Arrange
		past := clock.FixedClocker{T: time.Now().Add(-2 * time.Hour)}
		s, err := NewHS512(testConfig(past))
		if err != nil {
			t.Fatalf("failed to build jwt: %v", err)
		}
		token, err := s.Generate(7, "alice")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		// Act
		_, err = s.Verify(token)

		// Assert
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		// Arrange
		s, err := NewHS512(testConfig(clock.New()))
		if err != nil {
			t.Fatalf("failed to build jwt: %v", err)
		}

		// Act
		_, err = s.Verify("not.a.token")

		// Assert
		if err == nil {
			t.Fatalf("expected a malformed token to be rejected")
		}
	})
}
