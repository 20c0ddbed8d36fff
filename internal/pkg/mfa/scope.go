package mfa

// Purpose identifies what kind of secret a ciphertext protects.
type Purpose string

// PurposeOTPSeed scopes encryption to TOTP seeds.
const PurposeOTPSeed Purpose = "otp_seed"

// Scope binds a ciphertext to its owner. It is fed into AES-GCM as AAD, so
// decrypting with a different principal or purpose fails authentication.
type Scope struct {
	// PrincipalID is the owning principal.
	PrincipalID uint64
	// Purpose is the encryption purpose.
	Purpose Purpose
}
