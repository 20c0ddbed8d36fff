package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	libOTP "github.com/pquerna/otp"
	"github.com/sentraid/sentra/internal/auth/entity"
	"github.com/sentraid/sentra/internal/auth/outbound/cache"
	"github.com/sentraid/sentra/internal/auth/usecase"
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
)

const (
	testUsername = "alice"
	testPassword = "correct horse battery"
)

type fakeDB struct {
	mu         sync.Mutex
	principals map[uint64]*entity.Principal
}

func (f *fakeDB) clone(p *entity.Principal) *entity.Principal {
	cp := *p
	if p.OTPSecret != nil {
		cp.OTPSecret = append([]byte(nil), p.OTPSecret...)
	}
	return &cp
}

func (f *fakeDB) GetPrincipalByUsername(_ context.Context, username string) (*entity.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.principals {
		if p.Username == username {
			return f.clone(p), nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetPrincipalByID(_ context.Context, id uint64) (*entity.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.principals[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return f.clone(p), nil
}

func (f *fakeDB) EnrollOTPSecret(_ context.Context, principalID uint64, secret []byte, ref string, keyVersion int32) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.principals[principalID]
	if !ok {
		return false, goerror.ErrNotFound
	}
	if p.OTPSecret != nil {
		return false, nil
	}
	p.OTPSecret = append([]byte(nil), secret...)
	p.OTPSecretRef = ref
	p.KeyVersion = keyVersion
	return true, nil
}

func (f *fakeDB) RotateOTPSecret(_ context.Context, principalID uint64, secret []byte, ref string, keyVersion int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.principals[principalID]
	if !ok {
		return goerror.ErrNotFound
	}
	p.OTPSecret = append([]byte(nil), secret...)
	p.OTPSecretRef = ref
	p.KeyVersion = keyVersion
	return nil
}

func (f *fakeDB) TouchLastLogin(_ context.Context, principalID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.principals[principalID]; ok {
		now := time.Now()
		p.LastLoginAt = &now
	}
	return nil
}

type fakeMessaging struct {
	mu       sync.Mutex
	enrolled []usecase.SecretEnrolledEvent
	verified []usecase.OTPVerifiedEvent
	rotated  []usecase.SecretRotatedEvent
}

func (f *fakeMessaging) PublishSecretEnrolled(_ context.Context, msg usecase.SecretEnrolledEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enrolled = append(f.enrolled, msg)
	return nil
}

func (f *fakeMessaging) PublishOTPVerified(_ context.Context, msg usecase.OTPVerifiedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verified = append(f.verified, msg)
	return nil
}

func (f *fakeMessaging) PublishSecretRotated(_ context.Context, msg usecase.SecretRotatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rotated = append(f.rotated, msg)
	return nil
}

type fixture struct {
	uc    *usecase.Usecase
	db    *fakeDB
	cache cache.Cache
	msg   *fakeMessaging
	gm    *goroutine.Manager
	clk   *clock.FixedClocker
	jwt   jwt.JWT
	totp  otp.OTP
	enc   mfa.Encryptor
}

// settle waits for fire-and-forget publishes scheduled by the usecase. The
// manager is closed afterwards, so call it only at the end of a test.
func (fx *fixture) settle(t *testing.T) {
	t.Helper()
	if err := fx.gm.Wait(); err != nil {
		t.Fatalf("background tasks failed: %v", err)
	}
}

func newFixture(t *testing.T, extraYAML string) *fixture {
	t.Helper()

	cfgYAML := `
modules:
  auth:
    grant_ttl_seconds: 60
` + extraYAML

	cfg, err := config.NewViperFromBytes("yaml", []byte(cfgYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	// token verification checks exp against the wall clock, so the pinned
	// instant must be the present rather than a fixed date
	clk := &clock.FixedClocker{T: time.Now().UTC()}
	bcrypt := hash.NewBcrypt(4, "")
	hashed, err := bcrypt.Hash(testPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	secret := make([]byte, 64)
	for i := range secret {
		secret[i] = byte(i + 1)
	}
	tokener, err := jwt.NewHS512(jwt.Config{
		Secret:    secret,
		Issuer:    "sentra-test",
		Audiences: []string{"sentra-test"},
		TTL:       time.Hour,
		Clock:     clk,
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	db := &fakeDB{principals: map[uint64]*entity.Principal{
		1: {
			ID:           1,
			Username:     testUsername,
			PasswordHash: string(hashed),
			IsSuperuser:  true,
			CreatedAt:    clk.T.Add(-24 * time.Hour),
		},
	}}
	msg := &fakeMessaging{}
	mem := cache.NewMemory(clk)
	gm := goroutine.NewManager(8)
	totp := otp.NewTOTP("Sentra", 30, 0, libOTP.DigitsSix)
	enc := mfa.NewAESGCMEncryptor(mfa.StaticKeyProvider{KeyBytes: key})

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db,
		RepoCache:     mem,
		RepoMessaging: msg,
		Validator:     v10,
		Config:        cfg,
		Bcrypt:        bcrypt,
		HMAC:          hash.NewHMACSHA256("test-hmac-secret"),
		MFAEncryptor:  enc,
		Totp:          totp,
		Clock:         clk,
		UUID:          uid.NewUUID(),
		JWT:           tokener,
		Instrument:    instrument.NewNoop(),
		Goroutine:     gm,
	})

	return &fixture{
		uc:    uc,
		db:    db,
		cache: mem,
		msg:   msg,
		gm:    gm,
		clk:   clk,
		jwt:   tokener,
		totp:  totp,
		enc:   enc,
	}
}

// authContext builds a context carrying the claims of a freshly issued
// session token, the way the HTTP middleware does for real requests.
func (fx *fixture) authContext(t *testing.T, token string) context.Context {
	t.Helper()

	clm, err := fx.jwt.Verify(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	return jwt.SetAuth(context.Background(), clm)
}

// login runs the password step and returns the session token.
func (fx *fixture) login(t *testing.T) string {
	t.Helper()

	out, err := fx.uc.Login(context.Background(), usecase.LoginInput{
		Username: testUsername,
		Password: testPassword,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return out.Token
}

// currentCode derives the valid TOTP code for the stored secret.
func (fx *fixture) currentCode(t *testing.T) string {
	t.Helper()

	p, err := fx.db.GetPrincipalByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("failed to read principal: %v", err)
	}

	plain, err := fx.enc.Decrypt(p.OTPSecret, mfa.Scope{PrincipalID: 1, Purpose: mfa.PurposeOTPSeed})
	if err != nil {
		t.Fatalf("failed to open secret: %v", err)
	}

	code, err := fx.totp.GenerateCode(string(plain), fx.clk.Now())
	if err != nil {
		t.Fatalf("failed to derive code: %v", err)
	}
	return code
}

func assertStatusCode(t *testing.T, err error, want int) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror.Error, got %T: %v", err, err)
	}
	if gerr.StatusCode() != want {
		t.Fatalf("expected status %d, got %d (%v)", want, gerr.StatusCode(), gerr)
	}
}

func assertBusinessCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror.Error, got %T: %v", err, err)
	}
	if gerr.Code() != want {
		t.Fatalf("expected code %v, got %v (%v)", want, gerr.Code(), gerr)
	}
}
