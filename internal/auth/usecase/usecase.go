package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/sentraid/sentra/internal/auth/entity"
	"github.com/sentraid/sentra/internal/pkg/clock"
	"github.com/sentraid/sentra/internal/pkg/config"
	"github.com/sentraid/sentra/internal/pkg/goerror"
	"github.com/sentraid/sentra/internal/pkg/goroutine"
	"github.com/sentraid/sentra/internal/pkg/hash"
	"github.com/sentraid/sentra/internal/pkg/instrument"
	"github.com/sentraid/sentra/internal/pkg/jwt"
	"github.com/sentraid/sentra/internal/pkg/mfa"
	"github.com/sentraid/sentra/internal/pkg/otp"
	"github.com/sentraid/sentra/internal/pkg/uid"
	"github.com/sentraid/sentra/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// sealKeyVersion identifies the AES key that sealed otp_secret. Stored with
// the row so a future key rotation can tell old ciphertexts apart.
const sealKeyVersion int32 = 1

type SecretEnrolledEvent struct {
	PrincipalID     uint64
	Username        string
	SecretRef       string
	ProvisioningURI string
}

type OTPVerifiedEvent struct {
	PrincipalID uint64
	Username    string
}

type SecretRotatedEvent struct {
	PrincipalID     uint64
	Username        string
	SecretRef       string
	ProvisioningURI string
}

type repoMessaging interface {
	PublishSecretEnrolled(ctx context.Context, msg SecretEnrolledEvent) error
	PublishOTPVerified(ctx context.Context, msg OTPVerifiedEvent) error
	PublishSecretRotated(ctx context.Context, msg SecretRotatedEvent) error
}

type repoDB interface {
	GetPrincipalByUsername(ctx context.Context, username string) (*entity.Principal, error)
	GetPrincipalByID(ctx context.Context, id uint64) (*entity.Principal, error)

	EnrollOTPSecret(ctx context.Context, principalID uint64, secret []byte, ref string, keyVersion int32) (bool, error)
	RotateOTPSecret(ctx context.Context, principalID uint64, secret []byte, ref string, keyVersion int32) error
	TouchLastLogin(ctx context.Context, principalID uint64) error
}

type repoCache interface {
	PutGrant(ctx context.Context, principalID uint64, ttl time.Duration) error
	HasGrant(ctx context.Context, principalID uint64) (bool, error)
	DeleteGrant(ctx context.Context, principalID uint64) error

	RevokeSession(ctx context.Context, jti string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, jti string) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoCache     repoCache
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	hmac          hash.Hash
	mfaEncryptor  mfa.Encryptor
	totp          otp.OTP
	clock         clock.Clocker
	uuid          uid.StringID
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoCache     repoCache
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	HMAC          hash.Hash
	MFAEncryptor  mfa.Encryptor
	Totp          otp.OTP
	Clock         clock.Clocker
	UUID          uid.StringID
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoCache:     dep.RepoCache,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		hmac:          dep.HMAC,
		mfaEncryptor:  dep.MFAEncryptor,
		totp:          dep.Totp,
		clock:         dep.Clock,
		uuid:          dep.UUID,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// revocationHandle derives the denylist key for a token ID. The jti is
// HMAC-hashed so a cache dump never yields usable token identifiers.
func (s *Usecase) revocationHandle(ctx context.Context, jti string) (string, error) {
	h, err := s.hmac.Hash(jti)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash token id", "error", err)
		return "", goerror.NewServer(err)
	}

	return string(h), nil
}

// authenticated returns the session claims, rejecting requests without a
// token and tokens that were revoked by a logout.
func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	handle, err := s.revocationHandle(ctx, clm.ID)
	if err != nil {
		return nil, err
	}

	revoked, err := s.repoCache.IsSessionRevoked(ctx, handle)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check session revocation", "principal_id", clm.PrincipalID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if revoked {
		slog.WarnContext(ctx, "session token is revoked", "principal_id", clm.PrincipalID)
		return nil, goerror.NewBusiness("Invalid or expired token", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func (s *Usecase) openSecret(ctx context.Context, p *entity.Principal) (string, error) {
	plain, err := s.mfaEncryptor.Decrypt(p.OTPSecret, mfa.Scope{
		PrincipalID: p.ID,
		Purpose:     mfa.PurposeOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to open stored otp secret", "principal_id", p.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	return string(plain), nil
}

func (s *Usecase) grantTTL() time.Duration {
	ttl := s.cfg.GetSecond("modules.auth.grant_ttl_seconds")
	if ttl <= 0 {
		ttl = time.Hour
	}

	return ttl
}

// secretMaterial is what ensureSecret hands back to the login flow: the
// plain secret, its opaque ref, and provisioning data when freshly enrolled.
type secretMaterial struct {
	secret   string
	ref      string
	uri      string
	enrolled bool
}

// ensureSecret returns the principal's TOTP secret, enrolling a fresh one
// when none exists yet. Concurrent logins race on the enrollment; the
// database decides the winner and losers adopt the stored secret.
func (s *Usecase) ensureSecret(ctx context.Context, p *entity.Principal) (*secretMaterial, error) {
	if p.HasSecret() {
		secret, err := s.openSecret(ctx, p)
		if err != nil {
			return nil, err
		}
		return &secretMaterial{secret: secret, ref: p.OTPSecretRef}, nil
	}

	secret, uri, err := s.totp.Generate(p.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp secret", "principal_id", p.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	sealed, err := s.mfaEncryptor.Encrypt([]byte(secret), mfa.Scope{
		PrincipalID: p.ID,
		Purpose:     mfa.PurposeOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to seal otp secret", "principal_id", p.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ref := s.uuid.Generate()
	won, err := s.repoDB.EnrollOTPSecret(ctx, p.ID, sealed, ref, sealKeyVersion)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo enroll otp secret", "principal_id", p.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if won {
		return &secretMaterial{secret: secret, ref: ref, uri: uri, enrolled: true}, nil
	}

	// lost the race, another login enrolled first
	stored, err := s.repoDB.GetPrincipalByID(ctx, p.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo re-read principal after lost enrollment", "principal_id", p.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	secret, err = s.openSecret(ctx, stored)
	if err != nil {
		return nil, err
	}
	return &secretMaterial{secret: secret, ref: stored.OTPSecretRef}, nil
}
