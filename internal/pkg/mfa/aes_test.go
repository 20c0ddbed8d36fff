package mfa

import (
	"bytes"
	"testing"
)

func testKey() StaticKeyProvider {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return StaticKeyProvider{KeyBytes: key}
}

func TestAESGCMEncryptor(t *testing.T) {
	scope := Scope{PrincipalID: 42, Purpose: PurposeOTPSeed}

	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		enc := NewAESGCMEncryptor(testKey())
		plaintext := []byte("JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP")

		// Act
		ciphertext, err := enc.Encrypt(plaintext, scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}
		got, err := enc.Decrypt(ciphertext, scope)

		// Assert
		if err != nil {
			t.Fatalf("decrypt failed: %v", err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Fatalf("expected round trip to return the plaintext")
		}
		if bytes.Contains(ciphertext, plaintext) {
			t.Fatalf("expected the ciphertext to not contain the plaintext")
		}
	})

	t.Run("CiphertextDiffersPerCall", func(t *testing.T) {
		// Arrange
		enc := NewAESGCMEncryptor(testKey())
		plaintext := []byte("same secret")

		// Act
		first, err := enc.Encrypt(plaintext, scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}
		second, err := enc.Encrypt(plaintext, scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}

		// Assert
		if bytes.Equal(first, second) {
			t.Fatalf("expected fresh nonces to produce distinct ciphertexts")
		}
	})

	t.Run("WrongScopeFails", func(t *testing.T) {
		// Arrange
		enc := NewAESGCMEncryptor(testKey())
		ciphertext, err := enc.Encrypt([]byte("secret"), scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}

		// Act
		_, err = enc.Decrypt(ciphertext, Scope{PrincipalID: 43, Purpose: PurposeOTPSeed})

		// Assert
		if err == nil {
			t.Fatalf("expected a ciphertext moved between principals to not decrypt")
		}
	})

	t.Run("TamperedCiphertextFails", func(t *testing.T) {
		// Arrange
		enc := NewAESGCMEncryptor(testKey())
		ciphertext, err := enc.Encrypt([]byte("secret"), scope)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}
		ciphertext[len(ciphertext)-1] ^= 0x01

		// Act
		_, err = enc.Decrypt(ciphertext, scope)

		// Assert
		if err == nil {
			t.Fatalf("expected a tampered ciphertext to not decrypt")
		}
	})
}
