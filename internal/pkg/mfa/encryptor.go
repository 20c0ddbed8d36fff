// Package mfa encrypts second-factor secrets at rest. TOTP seeds are sealed
// with AES-256-GCM before they touch the database, with the owning principal
// and purpose bound into the ciphertext so a seed copied between rows will
// not decrypt.
package mfa

// Encryptor seals and opens secrets bound to a scope.
type Encryptor interface {
	// Encrypt returns ciphertext for the given plaintext and scope.
	Encrypt(plaintext []byte, scope Scope) (ciphertext []byte, err error)
	// Decrypt returns plaintext for the given ciphertext and scope.
	Decrypt(ciphertext []byte, scope Scope) (plaintext []byte, err error)
}

// KeyProvider supplies raw AES keys. For AES-256-GCM keys must be 32 bytes.
// Implementations may key per environment or per tenant.
type KeyProvider interface {
	Key(scope Scope) ([]byte, error)
}
