package db

import (
	"context"

	"github.com/sentraid/sentra/internal/auth/entity"
)

func (s *DB) GetPrincipalByUsername(ctx context.Context, username string) (_ *entity.Principal, err error) {
	ctx, span := s.startSpan(ctx, "GetPrincipalByUsername")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, username, password_hash, otp_secret, otp_secret_ref, key_version, is_superuser, created_at, last_login_at
		FROM principals
		WHERE username = $1
	`

	var p entity.Principal
	err = s.pool.QueryRow(ctx, query, username).
		Scan(&p.ID, &p.Username, &p.PasswordHash, &p.OTPSecret, &p.OTPSecretRef, &p.KeyVersion, &p.IsSuperuser, &p.CreatedAt, &p.LastLoginAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}

func (s *DB) GetPrincipalByID(ctx context.Context, id uint64) (_ *entity.Principal, err error) {
	ctx, span := s.startSpan(ctx, "GetPrincipalByID")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, username, password_hash, otp_secret, otp_secret_ref, key_version, is_superuser, created_at, last_login_at
		FROM principals
		WHERE id = $1
	`

	var p entity.Principal
	err = s.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Username, &p.PasswordHash, &p.OTPSecret, &p.OTPSecretRef, &p.KeyVersion, &p.IsSuperuser, &p.CreatedAt, &p.LastLoginAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}
