package db

import (
	"context"
)

// EnrollOTPSecret stores the sealed secret only when the principal has none
// yet. It reports whether this call won the enrollment; false means another
// enrollment landed first and the caller should re-read the stored secret.
func (s *DB) EnrollOTPSecret(ctx context.Context, principalID uint64, secret []byte, ref string, keyVersion int32) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "EnrollOTPSecret")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE principals
		SET otp_secret = $2, otp_secret_ref = $3, key_version = $4
		WHERE id = $1 AND otp_secret IS NULL
	`

	tag, err := s.pool.Exec(ctx, query, principalID, secret, ref, keyVersion)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}

// RotateOTPSecret replaces the principal's sealed secret unconditionally.
func (s *DB) RotateOTPSecret(ctx context.Context, principalID uint64, secret []byte, ref string, keyVersion int32) (err error) {
	ctx, span := s.startSpan(ctx, "RotateOTPSecret")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE principals
		SET otp_secret = $2, otp_secret_ref = $3, key_version = $4
		WHERE id = $1
	`

	_, err = s.pool.Exec(ctx, query, principalID, secret, ref, keyVersion)
	if err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) TouchLastLogin(ctx context.Context, principalID uint64) (err error) {
	ctx, span := s.startSpan(ctx, "TouchLastLogin")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE principals
		SET last_login_at = now()
		WHERE id = $1
	`

	_, err = s.pool.Exec(ctx, query, principalID)
	if err != nil {
		return s.mapError(err)
	}

	return nil
}
