// Package hash provides one-way hashing for credentials. Store only the
// hash; verify by comparing the plaintext against the stored value.
package hash

// Hash abstracts a one-way hash with verification.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
