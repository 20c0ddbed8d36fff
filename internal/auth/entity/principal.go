package entity

import "time"

// Principal is an account that can authenticate: a login name, a password
// hash, and optionally an enrolled TOTP secret (stored encrypted).
type Principal struct {
	ID           uint64
	Username     string
	PasswordHash string
	// OTPSecret is the AES-GCM sealed TOTP seed, nil until enrolled.
	OTPSecret []byte
	// OTPSecretRef is an opaque handle for the current secret, reminted on
	// every enrollment and rotation. Collaborators reference the secret by
	// this value so the sealed material never leaves the row.
	OTPSecretRef string
	// KeyVersion identifies the sealing key that encrypted OTPSecret.
	KeyVersion  int32
	IsSuperuser bool
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// HasSecret reports whether a TOTP secret has been enrolled.
func (p *Principal) HasSecret() bool {
	return len(p.OTPSecret) > 0
}
