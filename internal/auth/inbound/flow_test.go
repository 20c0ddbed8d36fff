package inbound_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	libOTP "github.com/pquerna/otp"

	"github.com/sentraid/sentra/internal/auth/entity"
	"github.com/sentraid/sentra/internal/auth/inbound"
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
	"github.com/sentraid/sentra/internal/pkg/router"
	"github.com/sentraid/sentra/internal/pkg/uid"
	"github.com/sentraid/sentra/internal/pkg/validator"
)

type memStore struct {
	mu         sync.Mutex
	principals map[uint64]*entity.Principal
}

func (f *memStore) clone(p *entity.Principal) *entity.Principal {
	cp := *p
	if p.OTPSecret != nil {
		cp.OTPSecret = append([]byte(nil), p.OTPSecret...)
	}
	return &cp
}

func (f *memStore) GetPrincipalByUsername(_ context.Context, username string) (*entity.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.principals {
		if p.Username == username {
			return f.clone(p), nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *memStore) GetPrincipalByID(_ context.Context, id uint64) (*entity.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.principals[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return f.clone(p), nil
}

func (f *memStore) EnrollOTPSecret(_ context.Context, principalID uint64, secret []byte, ref string, keyVersion int32) (bool, error) {
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

func (f *memStore) RotateOTPSecret(_ context.Context, principalID uint64, secret []byte, ref string, keyVersion int32) error {
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

func (f *memStore) TouchLastLogin(_ context.Context, principalID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.principals[principalID]; ok {
		now := time.Now()
		p.LastLoginAt = &now
	}
	return nil
}

type dropPublisher struct{}

func (dropPublisher) PublishSecretEnrolled(context.Context, usecase.SecretEnrolledEvent) error {
	return nil
}
func (dropPublisher) PublishOTPVerified(context.Context, usecase.OTPVerifiedEvent) error {
	return nil
}
func (dropPublisher) PublishSecretRotated(context.Context, usecase.SecretRotatedEvent) error {
	return nil
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// TestLoginFlow drives the whole two-step flow through the real router and
// middleware chain: password login, code verification, the guarded profile
// endpoint, and logout.
func TestLoginFlow(t *testing.T) {
	// Arrange
	cfgYAML := `
modules:
  auth:
    grant_ttl_seconds: 60
    debug_expose_otp: true
`
	cfg, err := config.NewViperFromBytes("yaml", []byte(cfgYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	clk := &clock.FixedClocker{T: time.Now().UTC()}
	bcrypt := hash.NewBcrypt(4, "")
	hashed, err := bcrypt.Hash("correct horse battery")
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

	store := &memStore{principals: map[uint64]*entity.Principal{
		1: {ID: 1, Username: "alice", PasswordHash: string(hashed), CreatedAt: clk.T.Add(-24 * time.Hour)},
	}}
	gm := goroutine.NewManager(8)
	ins := instrument.NewNoop()

	uc := usecase.New(usecase.Dependency{
		RepoDB:        store,
		RepoCache:     cache.NewMemory(clk),
		RepoMessaging: dropPublisher{},
		Validator:     v10,
		Config:        cfg,
		Bcrypt:        bcrypt,
		HMAC:          hash.NewHMACSHA256("test-hmac-secret"),
		MFAEncryptor:  mfa.NewAESGCMEncryptor(mfa.StaticKeyProvider{KeyBytes: key}),
		Totp:          otp.NewTOTP("Sentra", 30, 0, libOTP.DigitsSix),
		Clock:         clk,
		UUID:          uid.NewUUID(),
		JWT:           tokener,
		Instrument:    ins,
		Goroutine:     gm,
	})

	rt := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		JWT:        tokener,
		Instrument: ins,
	})
	inbound.RegisterHTTPEndpoint(rt, uc)

	call := func(t *testing.T, method, path, token, body string) (int, envelope) {
		t.Helper()

		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, req)

		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: invalid response body %q: %v", method, path, rec.Body.String(), err)
		}
		return rec.Code, env
	}

	// Act / Assert, step by step.

	// Anonymous check before anything happened.
	code, env := call(t, http.MethodGet, "/api/v1/auth/check-login", "", "")
	if code != http.StatusOK {
		t.Fatalf("check-login: expected 200, got %d", code)
	}
	var anon inbound.CheckLoginResponse
	if err := json.Unmarshal(env.Data, &anon); err != nil {
		t.Fatalf("check-login: bad data: %v", err)
	}
	if anon.LoggedIn || anon.OtpVerified {
		t.Fatalf("check-login: expected anonymous state, got %+v", anon)
	}

	// Guarded endpoint without a token.
	if code, _ := call(t, http.MethodGet, "/api/v1/auth/info", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("info without token: expected 401, got %d", code)
	}

	// First factor.
	code, env = call(t, http.MethodPost, "/api/v1/auth/login", "",
		`{"username":"alice","password":"correct horse battery"}`)
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", code, env.Message)
	}
	var login inbound.LoginResponse
	if err := json.Unmarshal(env.Data, &login); err != nil {
		t.Fatalf("login: bad data: %v", err)
	}
	if login.Token == "" || !login.OtpRequired || login.DebugOTP == "" {
		t.Fatalf("login: unexpected response: %+v", login)
	}
	if login.OtpKeyRef == "" {
		t.Fatalf("login: expected a key ref for the enrolled secret")
	}

	// Wrong password keeps returning 401 without touching the session.
	if code, _ := call(t, http.MethodPost, "/api/v1/auth/login", "",
		`{"username":"alice","password":"nope"}`); code != http.StatusUnauthorized {
		t.Fatalf("login with wrong password: expected 401, got %d", code)
	}

	// Not verified yet.
	code, env = call(t, http.MethodGet, "/api/v1/auth/otp-status", login.Token, "")
	if code != http.StatusOK {
		t.Fatalf("otp-status: expected 200, got %d", code)
	}
	var status inbound.OTPStatusResponse
	if err := json.Unmarshal(env.Data, &status); err != nil {
		t.Fatalf("otp-status: bad data: %v", err)
	}
	if status.Verified {
		t.Fatalf("otp-status: expected unverified before otp-login")
	}

	// A code of the wrong shape is a bad request, not a failed verification.
	if code, _ := call(t, http.MethodPost, "/api/v1/auth/otp-login", login.Token,
		`{"code":"abcdef"}`); code != http.StatusBadRequest {
		t.Fatalf("otp-login with malformed code: expected 400, got %d", code)
	}

	// Second factor with a wrong code.
	wrong := "000000"
	if wrong == login.DebugOTP {
		wrong = "000001"
	}
	if code, _ := call(t, http.MethodPost, "/api/v1/auth/otp-login", login.Token,
		`{"code":"`+wrong+`"}`); code != http.StatusUnauthorized {
		t.Fatalf("otp-login with wrong code: expected 401, got %d", code)
	}

	// Second factor with the real code.
	code, env = call(t, http.MethodPost, "/api/v1/auth/otp-login", login.Token,
		`{"code":"`+login.DebugOTP+`"}`)
	if code != http.StatusOK {
		t.Fatalf("otp-login: expected 200, got %d (%s)", code, env.Message)
	}
	var verified inbound.OTPLoginResponse
	if err := json.Unmarshal(env.Data, &verified); err != nil {
		t.Fatalf("otp-login: bad data: %v", err)
	}
	if !verified.Verified || verified.ExpiresAt.IsZero() {
		t.Fatalf("otp-login: unexpected response: %+v", verified)
	}

	// The guarded profile now answers.
	code, env = call(t, http.MethodGet, "/api/v1/auth/info", login.Token, "")
	if code != http.StatusOK {
		t.Fatalf("info: expected 200, got %d (%s)", code, env.Message)
	}
	var info inbound.InfoResponse
	if err := json.Unmarshal(env.Data, &info); err != nil {
		t.Fatalf("info: bad data: %v", err)
	}
	if info.ID != 1 || info.Username != "alice" || !info.OtpVerified {
		t.Fatalf("info: unexpected profile: %+v", info)
	}

	// Logout revokes the token and clears the grant.
	if code, _ := call(t, http.MethodPost, "/api/v1/auth/logout", login.Token, ""); code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", code)
	}
	if code, _ := call(t, http.MethodGet, "/api/v1/auth/info", login.Token, ""); code != http.StatusUnauthorized {
		t.Fatalf("info after logout: expected 401, got %d", code)
	}

	if err := gm.Wait(); err != nil {
		t.Fatalf("background tasks failed: %v", err)
	}
}
